package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTopSpendingCount is the ranking size used when callers do not pick one.
const DefaultTopSpendingCount = 5

// Insight bundles the top-spending ranking with the spending feedback.
type Insight struct {
	Top           []SpendingItem
	TotalSpending decimal.Decimal
	Level         FeedbackLevel
}

// BuildInsight derives an insight from an expense snapshot.
func BuildInsight(expenses []*Entry, n int) Insight {
	total := TotalAmount(expenses)
	return Insight{
		Top:           TopN(expenses, n),
		TotalSpending: total,
		Level:         Feedback(total),
	}
}

// Message returns the feedback text of the insight.
func (i Insight) Message() string {
	return i.Level.Message()
}

// Text renders the insight as a plain-text report.
func (i Insight) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Top %d Expensive Items\n", len(i.Top))
	for _, item := range i.Top {
		fmt.Fprintf(&b, "%s: $%s\n", item.Title, item.Amount.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal Spending: $%s\n", i.TotalSpending.StringFixed(2))
	b.WriteString("\nFeedback\n")
	b.WriteString(i.Message())

	return b.String()
}

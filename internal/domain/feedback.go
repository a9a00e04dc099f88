package domain

import "github.com/shopspring/decimal"

// FeedbackLevel is a qualitative judgement of total spending.
type FeedbackLevel string

const (
	FeedbackHigh     FeedbackLevel = "high"
	FeedbackModerate FeedbackLevel = "moderate"
	FeedbackGood     FeedbackLevel = "good"
)

var (
	highSpendingThreshold     = decimal.NewFromInt(1000)
	moderateSpendingThreshold = decimal.NewFromInt(500)
)

var feedbackMessages = map[FeedbackLevel]string{
	FeedbackHigh:     "Warning: Your spending is high this month. Consider reducing unnecessary expenses.",
	FeedbackModerate: "Caution: Your spending is moderate. Be mindful of your budget.",
	FeedbackGood:     "Good job! You're keeping your spending in check.",
}

// Feedback classifies total spending: above 1000 is high, above 500 is moderate,
// anything else is good.
func Feedback(totalSpending decimal.Decimal) FeedbackLevel {
	switch {
	case totalSpending.GreaterThan(highSpendingThreshold):
		return FeedbackHigh
	case totalSpending.GreaterThan(moderateSpendingThreshold):
		return FeedbackModerate
	default:
		return FeedbackGood
	}
}

// Message returns the fixed human-readable text for the level.
func (l FeedbackLevel) Message() string {
	return feedbackMessages[l]
}

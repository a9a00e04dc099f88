package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// SpendingItem is one row of a top-spending ranking.
type SpendingItem struct {
	Title  string
	Amount decimal.Decimal
}

// CategoryTotal is the spending aggregated under one category name.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// Summary holds the headline totals across all entries.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalSpending decimal.Decimal
	NetSavings    decimal.Decimal // TotalIncome - TotalSpending
}

// TotalAmount sums the amounts of entries. An empty collection sums to zero.
func TotalAmount(entries []*Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// NetSavings returns total income minus total spending. The result may be negative.
func NetSavings(incomes, expenses []*Entry) decimal.Decimal {
	return TotalAmount(incomes).Sub(TotalAmount(expenses))
}

// Summarize computes all headline totals from two snapshots.
func Summarize(incomes, expenses []*Entry) Summary {
	income := TotalAmount(incomes)
	spending := TotalAmount(expenses)
	return Summary{
		TotalIncome:   income,
		TotalSpending: spending,
		NetSavings:    income.Sub(spending),
	}
}

// TopN returns the n highest-amount entries in descending order.
// Equal amounts keep their order in the input collection.
func TopN(expenses []*Entry, n int) []SpendingItem {
	if n <= 0 || len(expenses) == 0 {
		return []SpendingItem{}
	}

	sorted := slices.Clone(expenses)
	slices.SortStableFunc(sorted, func(a, b *Entry) int {
		return b.Amount.Cmp(a.Amount)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	items := make([]SpendingItem, len(sorted))
	for i, e := range sorted {
		items[i] = SpendingItem{Title: e.Title, Amount: e.Amount}
	}
	return items
}

// TotalsByCategory groups expenses by category, largest total first.
// Categories with equal totals keep the order in which they first appear.
func TotalsByCategory(expenses []*Entry) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Amount: decimal.Zero})
		}
		totals[i].Amount = totals[i].Amount.Add(e.Amount)
		totals[i].Count++
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	return totals
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(title string, amount float64, category string) *Entry {
	return NewExpense(title, decimal.NewFromFloat(amount), time.Now(), category)
}

func income(title string, amount float64) *Entry {
	return NewIncome(title, decimal.NewFromFloat(amount), time.Now())
}

func TestTotalAmount(t *testing.T) {
	assert.True(t, TotalAmount(nil).IsZero())
	assert.True(t, TotalAmount([]*Entry{}).IsZero())

	entries := []*Entry{expense("a", 10.25, "x"), expense("b", 0.75, "x"), expense("c", 89, "y")}
	assert.True(t, decimal.NewFromInt(100).Equal(TotalAmount(entries)))

	reversed := []*Entry{entries[2], entries[1], entries[0]}
	assert.True(t, TotalAmount(entries).Equal(TotalAmount(reversed)), "sum must not depend on order")
}

func TestNetSavings(t *testing.T) {
	incomes := []*Entry{income("salary", 1500), income("bonus", 200)}
	expenses := []*Entry{expense("rent", 1200, "home"), expense("food", 300, "food")}

	got := NetSavings(incomes, expenses)
	want := TotalAmount(incomes).Sub(TotalAmount(expenses))
	assert.True(t, want.Equal(got))
	assert.True(t, decimal.NewFromInt(200).Equal(got))

	negative := NetSavings(nil, expenses)
	assert.True(t, negative.IsNegative())
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*Entry{income("salary", 1000)}, []*Entry{expense("rent", 400, "home")})

	assert.True(t, decimal.NewFromInt(1000).Equal(s.TotalIncome))
	assert.True(t, decimal.NewFromInt(400).Equal(s.TotalSpending))
	assert.True(t, decimal.NewFromInt(600).Equal(s.NetSavings))

	empty := Summarize(nil, nil)
	assert.True(t, empty.TotalIncome.IsZero())
	assert.True(t, empty.TotalSpending.IsZero())
	assert.True(t, empty.NetSavings.IsZero())
}

func TestTopN(t *testing.T) {
	expenses := []*Entry{
		expense("coffee", 4, "food"),
		expense("rent", 900, "home"),
		expense("book", 25, "fun"),
		expense("shoes", 120, "clothes"),
		expense("cinema", 25, "fun"),
		expense("train", 60, "travel"),
		expense("phone", 45, "home"),
	}

	tests := []struct {
		name   string
		n      int
		titles []string
	}{
		{name: "top five", n: 5, titles: []string{"rent", "shoes", "train", "phone", "book"}},
		{name: "ties keep input order", n: 6, titles: []string{"rent", "shoes", "train", "phone", "book", "cinema"}},
		{name: "n larger than collection", n: 20, titles: []string{"rent", "shoes", "train", "phone", "book", "cinema", "coffee"}},
		{name: "zero", n: 0, titles: []string{}},
		{name: "negative", n: -1, titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := TopN(expenses, tt.n)
			require.Len(t, items, len(tt.titles))

			for i, item := range items {
				assert.Equal(t, tt.titles[i], item.Title)
				if i > 0 {
					assert.False(t, item.Amount.GreaterThan(items[i-1].Amount), "ranking must be descending")
				}
			}
		})
	}

	assert.Equal(t, "coffee", expenses[0].Title, "input must not be reordered")
	assert.Empty(t, TopN(nil, 5))
}

func TestTotalsByCategory(t *testing.T) {
	totals := TotalsByCategory([]*Entry{
		expense("coffee", 4, "food"),
		expense("rent", 900, "home"),
		expense("lunch", 16, "food"),
		expense("book", 20, "fun"),
	})

	require.Len(t, totals, 3)
	assert.Equal(t, "home", totals[0].Category)
	assert.Equal(t, "food", totals[1].Category)
	assert.Equal(t, 2, totals[1].Count)
	assert.True(t, decimal.NewFromInt(20).Equal(totals[1].Amount))
	assert.Equal(t, "fun", totals[2].Category, "equal totals keep first-appearance order")

	assert.Empty(t, TotalsByCategory(nil))
}

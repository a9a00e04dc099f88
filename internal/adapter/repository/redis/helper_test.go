package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/expensetracker/internal/domain"
)

// newMiniredis starts an in-memory server and a client bound to it; both are
// torn down with the test.
func newMiniredis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// usdRates is a small table with one high-precision and one integral rate.
func usdRates(fetchedAt time.Time) *domain.RateTable {
	return &domain.RateTable{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.912345"),
			"JPY": decimal.NewFromInt(151),
		},
		FetchedAt: fetchedAt,
	}
}

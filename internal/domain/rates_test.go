package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	table := &RateTable{
		Base:  "USD",
		Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")},
	}

	got, err := Convert(decimal.NewFromInt(100), "EUR", table)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(got), "got %s", got)

	got, err = Convert(decimal.NewFromInt(100), " eur ", table)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(got))

	_, err = Convert(decimal.NewFromInt(100), "XYZ", table)
	var uerr *UnknownCurrencyError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "XYZ", uerr.Code)
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = Convert(decimal.NewFromInt(1), "EUR", nil)
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestRateTable_Validate(t *testing.T) {
	ok := &RateTable{Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")}}
	assert.NoError(t, ok.Validate())

	empty := &RateTable{}
	assert.ErrorIs(t, empty.Validate(), ErrRateFetch)

	zero := &RateTable{Rates: map[string]decimal.Decimal{"EUR": decimal.Zero}}
	assert.ErrorIs(t, zero.Validate(), ErrRateFetch)
}

func TestNormalizeCurrencyCode(t *testing.T) {
	code, ok := NormalizeCurrencyCode(" cad")
	assert.True(t, ok)
	assert.Equal(t, "CAD", code)

	_, ok = NormalizeCurrencyCode("EURO")
	assert.False(t, ok)
}

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("disk full")
	perr := &PersistenceError{Op: "insert", Err: cause}

	assert.ErrorIs(t, perr, ErrPersistence)
	assert.ErrorIs(t, perr, cause)
	assert.ErrorIs(t, &NotFoundError{ID: "x"}, ErrNotFound)
	assert.ErrorIs(t, &RateFetchError{Reason: "timeout", Err: cause}, cause)
	assert.Contains(t, (&RateFetchError{Reason: "missing rates"}).Error(), "missing rates")
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("entry not found")
	// ErrPersistence is matched by every PersistenceError.
	ErrPersistence = errors.New("persistence failure")
	// ErrUnknownCurrency is matched by every UnknownCurrencyError.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrRateFetch is matched by every RateFetchError.
	ErrRateFetch = errors.New("rate fetch failed")

	ErrInvalidVariant = errors.New("invalid entry variant")
)

// ValidationError reports the first field of an entry that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError is returned when an entry identifier is unknown to the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// PersistenceError wraps a failure of the backing datastore.
// The store guarantees no partial write was applied when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// UnknownCurrencyError is returned when a currency code is absent from the rate table.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("currency %q not in rate table", e.Code)
}

func (e *UnknownCurrencyError) Unwrap() error {
	return ErrUnknownCurrency
}

// RateFetchError is returned when the exchange-rate source could not be read or parsed.
type RateFetchError struct {
	Reason string
	Err    error
}

func (e *RateFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch rates: %s: %v", e.Reason, e.Err)
	}
	return "fetch rates: " + e.Reason
}

func (e *RateFetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRateFetch, e.Err}
	}
	return []error{ErrRateFetch}
}

package sqlite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iho/expensetracker/internal/domain"
)

type stubResult struct {
	affected int64
	err      error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }

func (r stubResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestRequireAffected(t *testing.T) {
	assert.NoError(t, requireAffected(stubResult{affected: 1}, "e1"))

	var nf *domain.NotFoundError
	err := requireAffected(stubResult{}, "e1")
	assert.True(t, errors.As(err, &nf))

	cause := errors.New("driver gone")
	err = requireAffected(stubResult{err: cause}, "e1")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rows affected")
}

package postgresql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRows fakes the parts of pgx.Rows the collectors touch. Scan leaves the
// destinations zeroed, which is enough to exercise iteration handling.
type stubRows struct {
	pgx.Rows
	remaining int
	err       error
}

func (r *stubRows) Next() bool {
	if r.remaining == 0 {
		return false
	}
	r.remaining--
	return true
}

func (r *stubRows) Scan(dest ...any) error { return nil }

func (r *stubRows) Err() error { return r.err }

func TestCollectLeaveRequests(t *testing.T) {
	requests, err := collectLeaveRequests(&stubRows{remaining: 2})
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestCollectLeaveRequests_IterationError(t *testing.T) {
	cause := errors.New("connection reset")

	requests, err := collectLeaveRequests(&stubRows{remaining: 1, err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, requests)
}

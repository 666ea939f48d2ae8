package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContentionRetry_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := withContentionRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithContentionRetry_SerializationFailureRetried(t *testing.T) {
	attempts := 0
	err := withContentionRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithContentionRetry_DeadlockRetried(t *testing.T) {
	attempts := 0
	err := withContentionRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithContentionRetry_BudgetExhausted(t *testing.T) {
	attempts := 0
	err := withContentionRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrContention)
	assert.Equal(t, maxContentionRetries, attempts)
}

func TestWithContentionRetry_NonRetryableReturnedAsIs(t *testing.T) {
	boom := errors.New("constraint violated")
	attempts := 0
	err := withContentionRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, attempts)
}

func TestWithContentionRetry_CancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := withContentionRetry(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"обернутая pq-ошибка", fmt.Errorf("insert failed: %w", &pq.Error{Code: "40001"}), true},
		{"не pq-ошибка", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestRetryOnSerializationExhaustsRetries(t *testing.T) {
	attempts := 0
	err := retryOnSerialization(func() error {
		attempts++
		return fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, serializableRetries, attempts)
}

func TestRetryOnSerializationStopsOnNonRetryable(t *testing.T) {
	boom := errors.New("syntax error")
	attempts := 0
	err := retryOnSerialization(func() error {
		attempts++
		return boom
	})

	// Неретраибельная ошибка возвращается как есть, без повторов
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, attempts)
}

func TestRetryOnSerializationSucceedsAfterRetry(t *testing.T) {
	attempts := 0
	err := retryOnSerialization(func() error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40P01"}
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

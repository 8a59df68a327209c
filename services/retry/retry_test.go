package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecuteWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	result := ExecuteWithRetry(func() (int, error) {
		calls++
		return 42, nil
	}, Options{MaxRetries: 2, RetryDelay: time.Millisecond})

	assert.True(t, result.Success)
	assert.Equal(t, 42, result.Data)
	assert.Equal(t, 1, calls)
}

func TestExecuteWithRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	result := ExecuteWithRetry(func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	}, Options{MaxRetries: 2, RetryDelay: time.Millisecond})

	assert.True(t, result.Success)
	assert.Equal(t, "ok", result.Data)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetryExhaustsRetries(t *testing.T) {
	boom := errors.New("still down")
	calls := 0
	result := ExecuteWithRetry(func() (int, error) {
		calls++
		return 0, boom
	}, Options{MaxRetries: 2, RetryDelay: time.Millisecond})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, boom)
	// MaxRetries counts retries: 1 attempt + 2 retries
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetryShortCircuitsPermanentErrors(t *testing.T) {
	permanent := errors.New("validation failed")
	calls := 0
	result := ExecuteWithRetry(func() (int, error) {
		calls++
		return 0, permanent
	}, Options{
		MaxRetries:  5,
		RetryDelay:  time.Millisecond,
		IsPermanent: func(err error) bool { return errors.Is(err, permanent) },
	})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, permanent)
	assert.Equal(t, 1, calls)
}

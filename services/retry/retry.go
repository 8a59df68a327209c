package retry

import (
	"log"
	"time"
)

// Options controls the bounded retry policy around storage-reaching
// operations. MaxRetries counts retries, not attempts: MaxRetries 2 means
// up to 3 executions.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	// IsPermanent short-circuits the loop for failures that will not go
	// away on retry (validation, gating). Nil retries everything.
	IsPermanent func(error) bool
}

// Result is the explicit success/failure outcome every retried operation
// resolves to; errors never escape the wrapper unhandled.
type Result[T any] struct {
	Success bool
	Data    T
	Error   error
}

// ExecuteWithRetry runs the operation up to 1+MaxRetries times, waiting
// RetryDelay * attempt between tries (linear backoff, same as the
// client's original policy).
func ExecuteWithRetry[T any](operation func() (T, error), opts Options) Result[T] {
	if opts.RetryDelay == 0 {
		opts.RetryDelay = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(opts.RetryDelay * time.Duration(attempt))
			log.Printf("[RETRY] Attempt %d/%d", attempt+1, opts.MaxRetries+1)
		}

		data, err := operation()
		if err == nil {
			return Result[T]{Success: true, Data: data}
		}
		lastErr = err

		if opts.IsPermanent != nil && opts.IsPermanent(err) {
			break
		}
		log.Printf("[RETRY] Attempt %d failed: %v", attempt+1, err)
	}

	return Result[T]{Success: false, Error: lastErr}
}

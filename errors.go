package fuse

import (
	"errors"
	"fmt"
	"time"
)

// Usage-contract and construction errors. These are reported synchronously:
// they signal programmer mistakes, not runtime failures the breaker manages.
var (
	// ErrNilCompletion is returned when a gated call is made without a
	// completion callback.
	ErrNilCompletion = errors.New("fuse: completion callback is nil")

	// ErrNilOperation is returned when a nil operation is registered.
	ErrNilOperation = errors.New("fuse: operation is nil")

	// ErrNoOperations is returned when a group is created with no operations.
	ErrNoOperations = errors.New("fuse: no operations to gate")

	// ErrUnknownOperation is returned when a group call names an operation
	// that was never registered.
	ErrUnknownOperation = errors.New("fuse: unknown operation")

	// ErrInvalidMaxFailures is returned when the failure threshold is below 1.
	ErrInvalidMaxFailures = errors.New("fuse: max failures must be at least 1")

	// ErrInvalidCallTimeout is returned when the call timeout is not positive.
	ErrInvalidCallTimeout = errors.New("fuse: call timeout must be positive")

	// ErrInvalidResetTimeout is returned when the reset timeout is not positive.
	ErrInvalidResetTimeout = errors.New("fuse: reset timeout must be positive")
)

// CircuitBreakerError is delivered when a call fails fast because the
// breaker is open. The wrapped operation was never invoked.
type CircuitBreakerError struct {
	// Op is the name of the gated operation.
	Op string
}

func (e *CircuitBreakerError) Error() string {
	return fmt.Sprintf("circuit breaker open: %s", e.Op)
}

// TimeoutError is delivered when a call runs longer than the breaker's
// call timeout. The underlying operation is not aborted; its eventual
// outcome is discarded.
type TimeoutError struct {
	// Op is the name of the gated operation.
	Op string

	// Elapsed is how long the call ran before the breaker gave up,
	// truncated to whole milliseconds.
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %dms", e.Op, e.Elapsed.Milliseconds())
}

// IsOpen reports whether err is a fail-fast rejection from an open breaker.
func IsOpen(err error) bool {
	var e *CircuitBreakerError
	return errors.As(err, &e)
}

// IsTimeout reports whether err is a breaker-enforced call timeout.
func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

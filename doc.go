// Package fuse implements a call-gating circuit breaker for asynchronous
// operations.
//
// fuse protects callers from repeatedly invoking a failing or slow
// dependency by:
//
//   - Tracking Failures: Consecutive errors and timeouts trip the breaker
//   - Fast Rejection: An open breaker rejects calls without invoking the operation
//   - Timeout Enforcement: Each call races a per-call deadline timer
//   - Gradual Recovery: A single half-open probe tests if the dependency recovered
//   - Lifecycle Hooks: OnStateChange, OnCall, OnReject for observability
//   - Zero Dependencies: Only the Go standard library
//
// # Quick Start
//
// Gate an asynchronous operation and invoke it through the breaker:
//
//	fetch, err := fuse.New("fetch-profile", func(args []any, done fuse.Completion) {
//	    profile, err := client.Profile(args[0].(string))
//	    done(profile, err)
//	})
//	if err != nil {
//	    // invalid configuration
//	}
//
//	err = fetch.Call([]any{"user-42"}, func(result any, err error) {
//	    if fuse.IsOpen(err) {
//	        serveFallback()
//	        return
//	    }
//	    render(result)
//	})
//
// Callers that prefer blocking semantics can use Run or the generic RunAs:
//
//	profile, err := fuse.RunAs[*Profile](fetch, "user-42")
//
// # Completion Contract
//
// A wrapped operation receives its positional arguments followed by a
// completion callback, and must invoke that callback exactly once with
// either a result or an error. The breaker holds up its side of the same
// contract: the caller's completion is invoked exactly once per gated
// call, always asynchronously, regardless of how many internal events
// (operation result, timeout timer) fire. A call made without a completion
// callback fails synchronously with ErrNilCompletion; that is a usage
// error, not a runtime failure the breaker manages.
//
// # Breaker States
//
// The breaker has three states:
//
//	Closed (normal):
//	    - Calls flow through to the wrapped operation
//	    - Consecutive failures and timeouts are counted
//	    - Reaching the threshold trips the breaker open
//
//	Open (tripped):
//	    - Calls are rejected immediately with *CircuitBreakerError
//	    - After the reset timeout the breaker becomes half-open,
//	      whether or not any calls arrive
//
//	HalfOpen (probing):
//	    - Exactly one probe call is allowed through
//	    - Concurrent callers fail fast while the probe is pending
//	    - A successful probe closes the breaker; a failed or timed-out
//	      probe reopens it and restarts the reset window
//
// # Timeouts
//
// Every executed call races the wrapped operation against the call
// timeout. Whichever resolves first decides the outcome; the later event
// is discarded. A timeout is delivered as *TimeoutError, counts as a
// failure, and does not abort the underlying operation; its eventual
// result is simply ignored.
//
//	slow, _ := fuse.New("slow-api", op,
//	    fuse.WithCallTimeout(250*time.Millisecond),
//	)
//
// # Grouping Operations
//
// Several named operations can share one breaker, and therefore share
// fate: failures on any member count toward the shared threshold, and an
// open breaker rejects all of them.
//
//	payments, err := fuse.NewGroup("payments", map[string]fuse.Operation{
//	    "charge": chargeOp,
//	    "refund": refundOp,
//	})
//
//	err = payments.Call("charge", []any{order}, func(result any, err error) {
//	    ...
//	})
//
// # Configuration
//
// Configure thresholds and timing with options:
//
//	b, err := fuse.New("api", op,
//	    fuse.WithMaxFailures(3),                   // trip after 3 consecutive failures
//	    fuse.WithCallTimeout(500*time.Millisecond), // per-call deadline
//	    fuse.WithResetTimeout(10*time.Second),     // open period before probing
//	)
//
// Default values:
//
//   - MaxFailures: 5 consecutive failures
//   - CallTimeout: 10 seconds
//   - ResetTimeout: 30 seconds
//
// Explicitly setting a non-positive value fails construction with
// ErrInvalidMaxFailures, ErrInvalidCallTimeout or ErrInvalidResetTimeout.
//
// # Error Kinds
//
// Three kinds of failure reach the caller's completion:
//
//   - The wrapped operation's own error, passed through verbatim
//   - *TimeoutError, when the call outlived the call timeout
//   - *CircuitBreakerError, when the breaker rejected the call while open
//
// Use IsOpen and IsTimeout to distinguish breaker-synthesized errors from
// upstream ones:
//
//	fetch.Call(args, func(result any, err error) {
//	    switch {
//	    case fuse.IsOpen(err):
//	        // breaker is open, operation never ran
//	    case fuse.IsTimeout(err):
//	        // operation ran too long
//	    case err != nil:
//	        // upstream failure
//	    }
//	})
//
// The breaker never retries and never wraps upstream errors; retry policy
// belongs to the caller.
//
// # Lifecycle Hooks
//
// Hooks provide observability without coupling to a specific logger or
// metrics system:
//
//	b, err := fuse.New("service", op,
//	    fuse.OnStateChange(func(name string, from, to fuse.State) {
//	        logger.Info("breaker state change",
//	            "breaker", name,
//	            "from", from,
//	            "to", to,
//	        )
//	    }),
//	    fuse.OnCall(func(op string, state fuse.State, err error) {
//	        if err != nil {
//	            metrics.Increment("breaker.failure", "op:"+op)
//	        }
//	    }),
//	    fuse.OnReject(func(op string) {
//	        metrics.Increment("breaker.rejected", "op:"+op)
//	    }),
//	)
//
// # Testing
//
// Inject a Clock to control both the call-timeout and reset timers in
// tests:
//
//	clock := newFakeClock()
//	b, _ := fuse.New("test", op,
//	    fuse.WithMaxFailures(1),
//	    fuse.WithResetTimeout(30*time.Second),
//	    fuse.WithClock(clock),
//	)
//
//	// Trip the breaker, then advance past the reset window.
//	clock.Advance(31 * time.Second)
//	// b.State() == fuse.HalfOpen, with no call traffic required.
//
// # Manual Reset
//
// Reset returns the breaker to closed and zeroes the failure count:
//
//	b.Reset()
//
// Useful for admin endpoints or after deploying fixes.
package fuse

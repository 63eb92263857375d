package fuse

import (
	"sync"
	"time"
)

// State represents the breaker state.
type State int

const (
	// Closed is the normal operating state. Calls flow through.
	Closed State = iota

	// Open is the tripped state. Calls fail fast without reaching the
	// wrapped operation.
	Open

	// HalfOpen is the recovery testing state. A single probe is allowed.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Completion delivers the outcome of a gated call. It receives either a
// result or an error, never both, and is invoked exactly once per call.
type Completion func(result any, err error)

// Operation is the signature for wrapped asynchronous operations. An
// operation receives its positional arguments followed by a completion
// callback, and must invoke the callback exactly once.
type Operation func(args []any, done Completion)

// OnStateChangeFunc is called when the breaker changes state.
type OnStateChangeFunc func(name string, from, to State)

// OnCallFunc is called after each executed call resolves.
type OnCallFunc func(op string, state State, err error)

// OnRejectFunc is called when a call is rejected because the breaker is open.
type OnRejectFunc func(op string)

// Default values.
const (
	DefaultMaxFailures  = 5
	DefaultCallTimeout  = 10 * time.Second
	DefaultResetTimeout = 30 * time.Second
)

// Breaker gates calls to a wrapped operation. It tracks consecutive
// failures, fails fast while tripped, and probes recovery after a reset
// window. Safe for concurrent use.
type Breaker struct {
	name string
	op   Operation
	cfg  config

	mu         sync.Mutex
	state      State
	failures   int
	lastCall   time.Time
	resetTimer Timer
	resetGen   uint64
}

// New creates a Breaker gating a single operation.
func New(name string, op Operation, opts ...Option) (*Breaker, error) {
	if op == nil {
		return nil, ErrNilOperation
	}
	b, err := newBreaker(name, opts)
	if err != nil {
		return nil, err
	}
	b.op = op
	return b, nil
}

func newBreaker(name string, opts []Option) (*Breaker, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Breaker{
		name:  name,
		cfg:   cfg,
		state: Closed,
	}, nil
}

// Call invokes the gated operation with args. The outcome is delivered to
// done exactly once, always asynchronously: the wrapped operation's own
// result, a *TimeoutError if the operation outlives the call timeout, or a
// *CircuitBreakerError if the breaker is open. The only synchronous error
// is ErrNilCompletion, a usage-contract violation.
func (b *Breaker) Call(args []any, done Completion) error {
	return b.call(b.name, b.op, args, done)
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Name returns the breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// LastCall returns when the gate last let a call through. The zero time
// means no call has been attempted.
func (b *Breaker) LastCall() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastCall
}

// Reset manually returns the breaker to closed and zeroes the failure
// count. Any pending recovery timer is discarded.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.setState(Closed)
}

func (b *Breaker) call(op string, fn Operation, args []any, done Completion) error {
	if done == nil {
		return ErrNilCompletion
	}

	b.mu.Lock()
	probe := false
	switch b.state {
	case Open:
		b.mu.Unlock()
		if b.cfg.onReject != nil {
			b.cfg.onReject(op)
		}
		// Fail fast, but keep the gate uniformly asynchronous so callers
		// never observe a synchronous outcome.
		go done(nil, &CircuitBreakerError{Op: op})
		return nil
	case HalfOpen:
		// Shut the gate again before the probe runs: only the first
		// caller in sees half-open, concurrent callers fail fast.
		probe = true
		b.setState(Open)
	}
	b.lastCall = b.cfg.clock.Now()
	b.mu.Unlock()

	started := b.cfg.clock.Now()
	var once sync.Once
	var timer Timer

	// The operation's completion and the timeout timer race to settle the
	// call. Whichever fires second is a no-op: it must not double-count
	// the outcome or re-invoke the caller.
	settle := func(result any, err error, timedOut bool) {
		once.Do(func() {
			if !timedOut {
				timer.Stop()
			}
			state := b.record(probe, err)
			if b.cfg.onCall != nil {
				b.cfg.onCall(op, state, err)
			}
			done(result, err)
		})
	}

	timer = b.cfg.clock.AfterFunc(b.cfg.callTimeout, func() {
		elapsed := b.cfg.clock.Now().Sub(started).Truncate(time.Millisecond)
		settle(nil, &TimeoutError{Op: op, Elapsed: elapsed}, true)
	})
	go fn(args, func(result any, err error) {
		settle(result, err, false)
	})

	return nil
}

// record feeds one call outcome into the state machine and returns the
// resulting state.
func (b *Breaker) record(probe bool, err error) State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.setState(Closed)
		return b.state
	}

	switch {
	case probe:
		// Failed probe: the gate already shut, start a fresh reset window.
		b.armReset()
	case b.state == Open:
		// Straggler from before the trip; the open state already
		// accounts for it.
	case b.state == HalfOpen:
		// Straggler landing while a probe window is pending: the
		// dependency is still failing, shut the gate again.
		b.trip()
	default:
		b.failures++
		if b.failures >= b.cfg.maxFailures {
			b.trip()
		}
	}
	return b.state
}

// trip opens the breaker and arms the reset timer.
func (b *Breaker) trip() {
	b.setState(Open)
	b.armReset()
}

// armReset schedules the open-to-half-open transition. The generation
// counter keeps a stale timer from resurrecting a breaker that has since
// closed or re-tripped.
func (b *Breaker) armReset() {
	b.disarmReset()
	gen := b.resetGen
	b.resetTimer = b.cfg.clock.AfterFunc(b.cfg.resetTimeout, func() {
		b.halfOpen(gen)
	})
}

func (b *Breaker) disarmReset() {
	b.resetGen++
	if b.resetTimer != nil {
		b.resetTimer.Stop()
		b.resetTimer = nil
	}
}

func (b *Breaker) halfOpen(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resetGen != gen || b.state != Open {
		return
	}
	b.setState(HalfOpen)
}

func (b *Breaker) setState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to

	if to != Open {
		b.disarmReset()
	}

	if b.cfg.onStateChange != nil {
		b.cfg.onStateChange(b.name, from, to)
	}
}

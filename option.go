package fuse

import "time"

type config struct {
	maxFailures  int
	callTimeout  time.Duration
	resetTimeout time.Duration
	clock        Clock

	onStateChange OnStateChangeFunc
	onCall        OnCallFunc
	onReject      OnRejectFunc
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		maxFailures:  DefaultMaxFailures,
		callTimeout:  DefaultCallTimeout,
		resetTimeout: DefaultResetTimeout,
		clock:        realClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch {
	case cfg.maxFailures < 1:
		return cfg, ErrInvalidMaxFailures
	case cfg.callTimeout <= 0:
		return cfg, ErrInvalidCallTimeout
	case cfg.resetTimeout <= 0:
		return cfg, ErrInvalidResetTimeout
	}
	return cfg, nil
}

// Option configures a Breaker or Group.
type Option func(*config)

// WithMaxFailures sets the consecutive-failure count that trips the
// breaker. Default is 5.
func WithMaxFailures(n int) Option {
	return func(c *config) {
		c.maxFailures = n
	}
}

// WithCallTimeout sets how long a call may run before the breaker reports
// it as failed by timeout. Default is 10 seconds.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) {
		c.callTimeout = d
	}
}

// WithResetTimeout sets how long the breaker stays open before allowing a
// recovery probe. Default is 30 seconds.
func WithResetTimeout(d time.Duration) Option {
	return func(c *config) {
		c.resetTimeout = d
	}
}

// WithClock sets the clock for time operations. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// OnStateChange sets a hook called when the breaker changes state.
func OnStateChange(fn OnStateChangeFunc) Option {
	return func(c *config) {
		c.onStateChange = fn
	}
}

// OnCall sets a hook called after each executed call resolves, with the
// state the outcome produced.
func OnCall(fn OnCallFunc) Option {
	return func(c *config) {
		c.onCall = fn
	}
}

// OnReject sets a hook called when a call is rejected because the breaker
// is open.
func OnReject(fn OnRejectFunc) Option {
	return func(c *config) {
		c.onReject = fn
	}
}

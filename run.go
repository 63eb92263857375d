package fuse

import "fmt"

// Run invokes the gated operation and blocks until its outcome is
// delivered. This is a convenience bridge for callers that do not need the
// asynchronous completion contract.
func Run(b *Breaker, args ...any) (any, error) {
	return wait(func(done Completion) error {
		return b.Call(args, done)
	})
}

// RunOp is Run for one member of a group.
func RunOp(g *Group, op string, args ...any) (any, error) {
	return wait(func(done Completion) error {
		return g.Call(op, args, done)
	})
}

// RunAs is Run with the result asserted to T.
func RunAs[T any](b *Breaker, args ...any) (T, error) {
	var zero T
	result, err := Run(b, args...)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("fuse: result is %T, not %T", result, zero)
	}
	return v, nil
}

type outcome struct {
	result any
	err    error
}

func wait(call func(Completion) error) (any, error) {
	ch := make(chan outcome, 1)
	err := call(func(result any, err error) {
		ch <- outcome{result: result, err: err}
	})
	if err != nil {
		return nil, err
	}
	o := <-ch
	return o.result, o.err
}

package fuse

import (
	"fmt"
	"sort"
)

// Group gates a named set of operations behind one shared breaker. The
// operations share fate: failures on any member count toward the shared
// threshold, and an open breaker fails fast for all of them.
type Group struct {
	b   *Breaker
	ops map[string]Operation
}

// NewGroup creates a Group gating the given operations under one shared
// breaker state. The registration map replaces any dynamic discovery of
// operations: callers list exactly what is gated.
func NewGroup(name string, ops map[string]Operation, opts ...Option) (*Group, error) {
	if len(ops) == 0 {
		return nil, ErrNoOperations
	}
	gated := make(map[string]Operation, len(ops))
	for opName, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilOperation, opName)
		}
		gated[opName] = op
	}
	b, err := newBreaker(name, opts)
	if err != nil {
		return nil, err
	}
	return &Group{b: b, ops: gated}, nil
}

// Call invokes the named gated operation with args. Outcome delivery
// follows the same contract as Breaker.Call. Naming an operation that was
// not registered returns an error wrapping ErrUnknownOperation.
func (g *Group) Call(op string, args []any, done Completion) error {
	fn, ok := g.ops[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	return g.b.call(op, fn, args, done)
}

// Operations returns the registered operation names in sorted order.
func (g *Group) Operations() []string {
	names := make([]string, 0, len(g.ops))
	for name := range g.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the group's breaker name.
func (g *Group) Name() string {
	return g.b.Name()
}

// State returns the shared breaker state.
func (g *Group) State() State {
	return g.b.State()
}

// Failures returns the shared consecutive failure count.
func (g *Group) Failures() int {
	return g.b.Failures()
}

// Reset manually returns the shared breaker to closed.
func (g *Group) Reset() {
	g.b.Reset()
}

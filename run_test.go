package fuse_test

import (
	"errors"
	"testing"

	"github.com/mlaren/fuse"
)

type testResult struct {
	value string
}

func TestRun(t *testing.T) {
	t.Run("returns value on success", func(t *testing.T) {
		b, err := fuse.New("test", okOp(&testResult{value: "hello"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.Run(b)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result.(*testResult).value != "hello" {
			t.Fatalf("expected 'hello', got %q", result.(*testResult).value)
		}
	})

	t.Run("returns error on failure", func(t *testing.T) {
		b, err := fuse.New("test", failOp(errTest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.Run(b)
		if !errors.Is(err, errTest) {
			t.Fatalf("expected errTest, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected nil result, got %v", result)
		}
	})

	t.Run("returns open error when breaker open", func(t *testing.T) {
		b, err := fuse.New("test", failOp(errTest), fuse.WithMaxFailures(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, _ = fuse.Run(b)

		result, err := fuse.Run(b)
		if !fuse.IsOpen(err) {
			t.Fatalf("expected open-breaker error, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected nil result, got %v", result)
		}
	})

	t.Run("reports nil completion through the blocking bridge", func(t *testing.T) {
		g, err := fuse.NewGroup("svc", map[string]fuse.Operation{"op": okOp(nil)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = fuse.RunOp(g, "missing")
		if !errors.Is(err, fuse.ErrUnknownOperation) {
			t.Fatalf("expected ErrUnknownOperation, got %v", err)
		}
	})
}

func TestRunAs(t *testing.T) {
	t.Run("asserts pointer types", func(t *testing.T) {
		b, err := fuse.New("test", okOp(&testResult{value: "typed"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.RunAs[*testResult](b)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result.value != "typed" {
			t.Fatalf("expected 'typed', got %q", result.value)
		}
	})

	t.Run("works with value types", func(t *testing.T) {
		b, err := fuse.New("test", okOp(42))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.RunAs[int](b)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result != 42 {
			t.Fatalf("expected 42, got %d", result)
		}
	})

	t.Run("returns zero value on error", func(t *testing.T) {
		b, err := fuse.New("test", failOp(errTest))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.RunAs[int](b)
		if !errors.Is(err, errTest) {
			t.Fatalf("expected errTest, got %v", err)
		}
		if result != 0 {
			t.Fatalf("expected 0, got %d", result)
		}
	})

	t.Run("returns zero value for nil result", func(t *testing.T) {
		b, err := fuse.New("test", okOp(nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := fuse.RunAs[*testResult](b)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if result != nil {
			t.Fatalf("expected nil result, got %v", result)
		}
	})

	t.Run("rejects mismatched types", func(t *testing.T) {
		b, err := fuse.New("test", okOp("a string"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = fuse.RunAs[int](b)
		if err == nil {
			t.Fatal("expected type mismatch error")
		}
	})
}

package uow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestSequentialRunnerPassesThrough(t *testing.T) {
	r := NewSequentialRunner()

	called := false
	err := r.Run(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !called {
		t.Fatal("fn was not called")
	}

	want := errors.New("boom")
	err = r.Run(context.Background(), func(ctx context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("Run error = %v, want %v", err, want)
	}
}

func TestSelectOff(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := Select(context.Background(), nil, "off", logger)
	if _, ok := r.(*SequentialRunner); !ok {
		t.Errorf("Select(off) = %T, want *SequentialRunner", r)
	}
}

func TestSelectOn(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// "on" trusts the operator and skips the probe entirely.
	r := Select(context.Background(), nil, "on", logger)
	if _, ok := r.(*TxRunner); !ok {
		t.Errorf("Select(on) = %T, want *TxRunner", r)
	}
}

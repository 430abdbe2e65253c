package sutureext

import (
	"context"
	"errors"
	"testing"

	"github.com/thejerf/suture/v4"
)

func TestSanitizeError(t *testing.T) {
	ctx := context.Background()

	if err := SanitizeError(ctx, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	plain := errors.New("failed")
	if err := SanitizeError(ctx, plain); err != plain {
		t.Fatalf("expected error unchanged, got %v", err)
	}

	err := SanitizeError(ctx, context.Canceled)
	if errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error hidden while context is alive, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := SanitizeError(canceled, plain); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected %v, got %v", context.Canceled, err)
	}
}

func TestSupervisor_Terminates(t *testing.T) {
	super := NewSimple("test")
	Add(super, NewServiceFunc("window", func(ctx context.Context) error {
		return suture.ErrTerminateSupervisorTree
	}))

	if err := super.Serve(context.Background()); !IsTerminated(err) {
		t.Fatalf("expected terminated supervisor, got %v", err)
	}
}

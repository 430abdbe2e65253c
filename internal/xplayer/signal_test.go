package xplayer

import "testing"

func TestState(t *testing.T) {
	s := NewState("a")
	if s.V != "a" {
		t.Fatalf("expected initial value a, got %q", s.V)
	}

	calls := 0
	s.AddEffect(func() { calls++ })

	s.Update("a")
	if calls != 0 {
		t.Fatalf("expected no effect for same value, got %d", calls)
	}

	s.Update("b")
	s.Update("b")
	if calls != 1 {
		t.Fatalf("expected 1 effect, got %d", calls)
	}
	if s.V != "b" {
		t.Fatalf("expected b, got %q", s.V)
	}
}

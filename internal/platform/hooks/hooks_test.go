package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNotifier_OrderAndPhases(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	var calls []string

	n.RegisterPre(func(_ context.Context, ev Event) error {
		calls = append(calls, "pre-1:"+ev.ResourceID)
		return nil
	})
	n.RegisterPre(func(_ context.Context, ev Event) error {
		calls = append(calls, "pre-2:"+ev.ResourceID)
		return nil
	})
	n.RegisterPost(func(_ context.Context, ev Event) error {
		calls = append(calls, "post-1:"+ev.ResourceID)
		return nil
	})

	ev := Event{Action: "delete", ResourceType: "appointment", ResourceID: "abc"}
	n.FirePre(context.Background(), ev)
	n.FirePost(context.Background(), ev)

	want := []string{"pre-1:abc", "pre-2:abc", "post-1:abc"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestNotifier_ErrorDoesNotStopOthers(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	ran := false

	n.RegisterPost(func(context.Context, Event) error { return errors.New("observer down") })
	n.RegisterPost(func(context.Context, Event) error { ran = true; return nil })

	n.FirePost(context.Background(), Event{Action: "delete"})
	if !ran {
		t.Error("expected later hook to run after earlier hook failed")
	}
}

func TestNotifier_NoHooks(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	// Must not panic with empty lists.
	n.FirePre(context.Background(), Event{})
	n.FirePost(context.Background(), Event{})
}

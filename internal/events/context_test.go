package events

import (
	"context"
	"testing"
)

func TestTriggerRoundTrip(t *testing.T) {
	ctx := ContextWithTrigger(context.Background(), TriggerFollowOn)
	got := TriggerFromContext(ctx)
	if got != TriggerFollowOn {
		t.Errorf("got %q, want %q", got, TriggerFollowOn)
	}
}

func TestTriggerDefaultsToUser(t *testing.T) {
	if got := TriggerFromContext(context.Background()); got != TriggerUser {
		t.Errorf("got %q, want %q", got, TriggerUser)
	}
	ctx := ContextWithTrigger(context.Background(), "")
	if got := TriggerFromContext(ctx); got != TriggerUser {
		t.Errorf("got %q, want %q", got, TriggerUser)
	}
}

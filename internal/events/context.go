package events

import "context"

type triggerKey struct{}

// Triggers recorded on operation events.
const (
	TriggerUser     = "user"
	TriggerFollowOn = "follow-on"
)

// ContextWithTrigger returns a new context recording what started an operation.
func ContextWithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFromContext extracts the trigger, or TriggerUser if absent.
func TriggerFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(triggerKey{}).(string); ok && t != "" {
		return t
	}
	return TriggerUser
}

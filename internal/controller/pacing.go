package controller

import (
	"context"
	"time"
)

// Default minimum display durations applied after a successful response.
const (
	DefaultSuggestDelay = 1000 * time.Millisecond
	DefaultRefreshDelay = 800 * time.Millisecond
)

// Pacing holds the post-success display delays.
type Pacing struct {
	Suggest time.Duration
	Refresh time.Duration
}

// DefaultPacing returns the standard delays.
func DefaultPacing() Pacing {
	return Pacing{Suggest: DefaultSuggestDelay, Refresh: DefaultRefreshDelay}
}

// Pacer waits out a display delay. Wait returns early with ctx's error when
// ctx is done.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerPacer waits on a real timer.
type TimerPacer struct{}

func (TimerPacer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay returns immediately.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

package tui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/events"
	"github.com/dohr-michael/emotai/internal/particles"
)

// Fallback terminal extent when stdout is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// TerminalSize returns the size of the terminal on stdout, or 80x24.
func TerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// SeedParticles draws the session's particles over the band the TUI will
// give them in a width x height terminal. It returns nil when particles are
// disabled.
func SeedParticles(cfg config.ParticlesConfig, width, height int) *particles.Engine {
	if cfg.Disabled {
		return nil
	}
	return particles.New(width, FieldHeight(height),
		particles.WithCount(cfg.Count),
		particles.WithPalette(cfg.Palette),
		particles.WithAmplitude(cfg.AmplitudeX, cfg.AmplitudeY),
		particles.WithSpeed(cfg.Speed),
	)
}

// Run starts the TUI and blocks until the user quits or ctx is done.
// Controller events are forwarded from the bus to the program in order.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	stop := forward(ctx, opts.Bus, opts.Health, p.Send)
	defer stop()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// forward subscribes send to the bus, then starts health, so the first
// status it publishes is not missed. The returned func undoes both.
func forward(ctx context.Context, bus *events.Bus, health HealthMonitor, send func(tea.Msg)) func() {
	unsubscribe := func() {}
	if bus != nil {
		unsubscribe = bus.Subscribe(func(e events.Event) {
			if msg := Project(e); msg != nil {
				send(msg)
			}
		}, events.EventStateChanged, events.EventFeedbackAck, events.EventOperation, events.EventServiceStatus)
	}
	if health != nil {
		health.Start(ctx)
	}
	return func() {
		if health != nil {
			health.Stop()
		}
		unsubscribe()
	}
}

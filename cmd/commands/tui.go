package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/clients/tui"
	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/controller"
	"github.com/dohr-michael/emotai/internal/events"
	"github.com/dohr-michael/emotai/internal/heartbeat"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive TUI",
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns stdout; logs go to a file.
	logPath := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := setupLogging(cmd, cfg, logFile)

	bus := events.NewBus(256)
	defer bus.Close()

	jar := openSession(cfg, log)
	client := newClient(cfg, jar, log)
	ctrl := controller.New(client,
		controller.WithBus(bus),
		controller.WithLogger(log),
		controller.WithPacing(pacingOf(cfg)),
	)
	defer ctrl.Close()

	reloader := config.NewReloader(configPath, config.DotenvPath(), cfg, log)
	reloader.OnReload(func(next *config.Config) {
		applyOverrides(cmd, next)
		ctrl.SetPacing(pacingOf(next))
		log.Info("pacing updated",
			slog.Duration("suggest", next.Pacing.SuggestDelay.Duration()),
			slog.Duration("refresh", next.Pacing.RefreshDelay.Duration()))
	})

	monitor := heartbeat.NewMonitor(client.BaseURL(),
		heartbeat.WithInterval(cfg.Service.HealthInterval.Duration()),
		heartbeat.WithBus(bus),
		heartbeat.WithLogger(log),
	)

	width, height := tui.TerminalSize()
	return tui.Run(ctx, tui.Options{
		Controller:    ctrl,
		Bus:           bus,
		Reloader:      reloader,
		Eraser:        forgetter{client: client, jar: jar},
		Health:        monitor,
		Particles:     tui.SeedParticles(cfg.Particles, width, height),
		FrameInterval: cfg.Particles.FrameInterval.Duration(),
		ServiceURL:    client.BaseURL(),
		Logger:        log,
	})
}

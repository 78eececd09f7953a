package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/clients/api"
	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/controller"
	"github.com/dohr-michael/emotai/internal/events"
	"github.com/dohr-michael/emotai/internal/sessions"
)

// loadConfig reads the --config file (defaults when missing) and applies
// flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd, cfg)
	return cfg, nil
}

func applyOverrides(cmd *cli.Command, cfg *config.Config) {
	if url := cmd.String("service"); url != "" {
		cfg.Service.BaseURL = url
	}
}

// setupLogging installs a text handler on w as the default logger. --debug
// wins over the configured level.
func setupLogging(cmd *cli.Command, cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Log.SlogLevel()
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}

// newClient builds the service client. When jar is not nil the service
// session survives between runs.
func newClient(cfg *config.Config, jar *sessions.FileJar, log *slog.Logger) *api.Client {
	opts := []api.Option{
		api.WithTimeout(cfg.Service.Timeout.Duration()),
		api.WithLogger(log),
	}
	if jar != nil {
		opts = append(opts, api.WithJar(jar))
	}
	return api.New(cfg.Service.BaseURL, opts...)
}

// openSession loads the persisted session for the configured service. A
// broken session file is logged and replaced by a fresh session.
func openSession(cfg *config.Config, log *slog.Logger) *sessions.FileJar {
	jar, err := sessions.Open(config.SessionsPath(), cfg.Service.BaseURL, log)
	if err != nil {
		log.Warn("session not restored", "error", err)
		return nil
	}
	return jar
}

func pacingOf(cfg *config.Config) controller.Pacing {
	return controller.Pacing{
		Suggest: cfg.Pacing.SuggestDelay.Duration(),
		Refresh: cfg.Pacing.RefreshDelay.Duration(),
	}
}

// newOneShotController builds a controller for non-interactive commands.
// Display delays only matter on screen, so they are skipped.
func newOneShotController(svc controller.Service, bus *events.Bus, log *slog.Logger) *controller.Controller {
	return controller.New(svc,
		controller.WithBus(bus),
		controller.WithLogger(log),
		controller.WithPacer(controller.NoDelay{}),
	)
}

// env bundles what every one-shot command needs.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	client *api.Client
	jar    *sessions.FileJar
	ctrl   *controller.Controller
	out    io.Writer
}

func newEnv(cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := setupLogging(cmd, cfg, os.Stderr)
	jar := openSession(cfg, log)
	client := newClient(cfg, jar, log)
	return &env{
		cfg:    cfg,
		log:    log,
		client: client,
		jar:    jar,
		ctrl:   newOneShotController(client, nil, log),
		out:    cmd.Root().Writer,
	}, nil
}

func (e *env) Close() {
	e.ctrl.Close()
}

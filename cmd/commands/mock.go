package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/internal/mockservice"
)

// NewMockCommand returns the mock subcommand.
func NewMockCommand() *cli.Command {
	return &cli.Command{
		Name:  "mock",
		Usage: "Serve an in-memory suggestion service for local use",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on",
				Value: "127.0.0.1:5000",
			},
		},
		Action: runMock,
	}
}

func runMock(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := setupLogging(cmd, cfg, os.Stderr)

	ln, err := net.Listen("tcp", cmd.String("addr"))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return serveMock(ctx, ln, log)
}

// serveMock serves until ctx is done, then shuts down gracefully.
func serveMock(ctx context.Context, ln net.Listener, log *slog.Logger) error {
	server := &http.Server{
		Handler:           mockservice.New(mockservice.WithLogger(log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock service listening", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

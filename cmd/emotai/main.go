package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dohr-michael/emotai/cmd/commands"
	"github.com/dohr-michael/emotai/internal/config"
	"github.com/dohr-michael/emotai/internal/controller"
)

func main() {
	if err := config.LoadDotenv(config.DotenvPath()); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.NewRootCommand().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "emotai:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for input the user can fix, 1 otherwise.
func exitCode(err error) int {
	if controller.IsValidation(err) {
		return 2
	}
	return 1
}

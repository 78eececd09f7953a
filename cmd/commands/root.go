package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "emotai",
		Usage: "Emoji suggestions for your messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:  "service",
				Usage: "Suggestion service base URL (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewSuggestCommand(),
			NewHistoryCommand(),
			NewAnalyticsCommand(),
			NewFeedbackCommand(),
			NewForgetCommand(),
			NewMockCommand(),
		},
		DefaultCommand: "tui",
	}
}

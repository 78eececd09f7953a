package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// NewFeedbackCommand returns the feedback subcommand.
func NewFeedbackCommand() *cli.Command {
	return &cli.Command{
		Name:      "feedback",
		Usage:     "Rate the suggestion made for a message",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "rating",
				Aliases: []string{"r"},
				Usage:   "Rating from 1 to 5",
				Value:   emoji.DefaultRating,
			},
			&cli.StringFlag{
				Name:    "comment",
				Aliases: []string{"m"},
				Usage:   "Optional comment",
			},
		},
		Action: runFeedback,
	}
}

func runFeedback(ctx context.Context, cmd *cli.Command) error {
	message := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("usage: emotai feedback [--rating n] [--comment text] <message>")
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	rating := int(cmd.Int("rating"))
	if err := e.ctrl.SetRating(rating); err != nil {
		return err
	}
	if err := e.ctrl.SubmitFeedback(ctx, message, cmd.String("comment"), rating); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	fmt.Fprintln(e.out, "Thank you for your feedback!")
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewSuggestCommand returns the suggest subcommand.
func NewSuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest emojis for a message and print them",
		ArgsUsage: "<message>",
		Flags:     []cli.Flag{outputFlag},
		Action:    runSuggest,
	}
}

func runSuggest(ctx context.Context, cmd *cli.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	message := strings.Join(cmd.Args().Slice(), " ")
	if err := e.ctrl.Suggest(ctx, message); err != nil {
		return err
	}

	st := e.ctrl.Snapshot()
	res := st.Result
	return render(e.out, cmd.String("output"), res, func(w io.Writer) error {
		fmt.Fprintln(w, res.Emojis.String())
		fmt.Fprintln(w, res.ExplanationText())
		return nil
	})
}

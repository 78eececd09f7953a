package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// NewHistoryCommand returns the history subcommand.
func NewHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List past suggestions of this session",
		Flags:  []cli.Flag{outputFlag},
		Action: runHistory,
	}
}

// NewAnalyticsCommand returns the analytics subcommand.
func NewAnalyticsCommand() *cli.Command {
	return &cli.Command{
		Name:   "analytics",
		Usage:  "Show emoji usage statistics",
		Flags:  []cli.Flag{outputFlag},
		Action: runAnalytics,
	}
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.ctrl.RefreshHistory(ctx); err != nil {
		return err
	}
	list := e.ctrl.Snapshot().History
	return render(e.out, cmd.String("output"), list, func(w io.Writer) error {
		return printHistory(w, list)
	})
}

func printHistory(w io.Writer, list []emoji.HistoryEntry) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return nil
	}

	limit := columnWidth(60)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tEMOJIS\tMESSAGE\tEXPLANATION")
	for _, h := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			h.CreatedText(),
			h.Emojis.String(),
			clip(h.MessageText(), 40),
			clip(h.ExplanationText(), limit),
		)
	}
	return tw.Flush()
}

func runAnalytics(ctx context.Context, cmd *cli.Command) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.ctrl.RefreshAnalytics(ctx); err != nil {
		return err
	}
	st := e.ctrl.Snapshot()
	a := emoji.Analytics{Usage: st.Analytics, Stats: st.Stats}
	return render(e.out, cmd.String("output"), a, func(w io.Writer) error {
		return printAnalytics(w, a)
	})
}

func printAnalytics(w io.Writer, a emoji.Analytics) error {
	fmt.Fprintln(w, "Emoji Usage Stats")
	if len(a.Usage) == 0 {
		fmt.Fprintln(w, "No emoji usage yet.")
	}
	for _, u := range a.Usage {
		fmt.Fprintln(w, u.String())
	}
	if a.Stats.MessageCount > 0 {
		fmt.Fprintf(w, "\nmessages: %d\n", a.Stats.MessageCount)
	}
	printCounts(w, "sentiment", a.Stats.Sentiment)
	printCounts(w, "ratings", a.Stats.Feedback)
	return nil
}

func printCounts(w io.Writer, label string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintf(w, "%s:", label)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%d", k, m[k])
	}
	fmt.Fprintln(w)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const (
	historyFixedColumns = 50
	minCommandColumn    = 20
)

func (a *App) historyCmd() *cobra.Command {
	var clearHistory bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show how often each button was launched",
		Long: `Show the persisted launch history, most recent first.

With --clear, the history is deleted instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			history := a.openHistory(a.log)

			if clearHistory {
				if err := history.Clear(); err != nil {
					return fmt.Errorf("clearing history: %w", err)
				}
				colorOK.Fprintln(out, "✓ history cleared")
				return nil
			}

			records := history.Records()
			if len(records) == 0 {
				fmt.Fprintln(out, "No launches recorded yet.")
				return nil
			}

			// The command column takes the remaining terminal width.
			commandWidth := 0
			if width := termWidth(out); width > 0 {
				commandWidth = max(width-historyFixedColumns, minCommandColumn)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, colorHeader.Sprint("LABEL\tCOUNT\tLAST LAUNCH\tCOMMAND"))
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					r.Label, r.Count, r.LastLaunchedAt.Local().Format("2006-01-02 15:04"),
					truncate(r.Command, commandWidth))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&clearHistory, "clear", false, "Delete the launch history")

	return cmd
}

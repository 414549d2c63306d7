package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the configured buttons",
		Long: `Print every configured button in display order, one per line, as
"Label: <label>; Command: <command>."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, b := range cfg.Buttons {
				fmt.Fprintf(out, "Label: %s; Command: %s.\n", b.Label, b.Command)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/launchpanel/pkg/config"
)

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config file",
		Long: `Load the config file and report whether it is valid.

Exits with status 1 when the file cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			cfg, err := a.loadConfig()
			if err != nil {
				colorError.Fprintf(out, "✗ %v\n", err)
				return fmt.Errorf("config check failed")
			}

			colorOK.Fprintf(out, "✓ %s is valid (%s)\n", cfg.Source, cfg.Format)
			fmt.Fprintf(out, "  %s %q, font size %v, tps %d\n",
				colorHeader.Sprint("panel"), cfg.Panel.Title, cfg.Panel.FontSize, cfg.Panel.TPS)

			if len(cfg.Buttons) == 0 {
				colorMuted.Fprintln(out, "  no buttons configured")
				return nil
			}
			for _, b := range cfg.Buttons {
				fmt.Fprintf(out, "  %s %s → %s %s\n",
					colorHeader.Sprintf("%s%d", config.ButtonSectionPrefix, b.Section),
					b.Label,
					b.Command,
					colorMuted.Sprintf("(%d,%d %dx%d)", b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height))
			}
			return nil
		},
	}
}

// Package cli 提供 launchpanel 命令行入口
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/decker502/launchpanel/pkg/app"
	"github.com/decker502/launchpanel/pkg/config"
	"github.com/decker502/launchpanel/pkg/embedded"
	"github.com/decker502/launchpanel/pkg/game"
	"github.com/decker502/launchpanel/pkg/logger"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	root *cobra.Command

	configPath       string
	verbose          bool
	tps              int
	legacyHoverAlpha bool

	log zerolog.Logger

	// runPanel runs the main loop; replaced in tests.
	runPanel func(ctx context.Context, cfg *config.LauncherConfig, log zerolog.Logger) error
	// openHistory opens the persisted launch history; replaced in tests.
	openHistory func(log zerolog.Logger) *game.LaunchHistory
}

// NewApp creates the CLI application.
func NewApp() *App {
	a := &App{
		log:      zerolog.Nop(),
		runPanel: app.Run,
		openHistory: func(log zerolog.Logger) *game.LaunchHistory {
			return game.NewLaunchHistory(game.OpenStorage(app.AppName, log), log)
		},
	}

	a.root = &cobra.Command{
		Use:   "launchpanel",
		Short: "A desktop panel of buttons that launch programs",
		Long: `launchpanel opens a window with up to five buttons read from a config file.

Clicking a button runs its command through the system shell. Right-clicking
a button copies its command to the clipboard.`,
		Example: `  launchpanel
  launchpanel --config ~/panels/emulators.toml
  launchpanel --tps 0 --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.log = logger.NewConsole(a.verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tps") {
				cfg.Panel.TPS = a.tps
				if err := cfg.Panel.Validate(); err != nil {
					return fmt.Errorf("--tps: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runPanel(ctx, cfg, a.log)
		},
	}

	a.root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		fmt.Sprintf("Config file, YAML or TOML (default $%s or %s)", config.EnvConfigPath, config.DefaultConfigPath()))
	a.root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.legacyHoverAlpha, "legacy-hover-alpha", false,
		"Treat hover_alpha as hover_blue, as older panels did")
	a.root.Flags().IntVar(&a.tps, "tps", 60, "Update rate in ticks per second, 0 for unthrottled")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.initCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "launchpanel %s (commit: %s)\n", Version, Commit)
		},
	}
}

// explicitConfig reports whether the user chose a config path.
func (a *App) explicitConfig() bool {
	return a.configPath != "" || os.Getenv(config.EnvConfigPath) != ""
}

// loadConfig loads the resolved config file. Without an explicit path and
// without a file at the default location, the embedded default is used.
func (a *App) loadConfig() (*config.LauncherConfig, error) {
	path := config.ResolveConfigPath(a.configPath)
	opts := config.LoadOptions{LegacyHoverAlpha: a.legacyHoverAlpha}

	cfg, err := config.Load(path, opts, a.log)
	if err == nil {
		return cfg, nil
	}
	if a.explicitConfig() || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	a.log.Warn().Str("path", path).Msg("no config file, using built-in default (run `launchpanel init` to create one)")
	data, derr := embedded.DefaultPanelConfig()
	if derr != nil {
		return nil, fmt.Errorf("reading built-in config: %w", derr)
	}
	return config.LoadBytes(embedded.DefaultPanelConfigPath, config.FormatYAML, data, opts, a.log)
}

// SetArgs sets the command-line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

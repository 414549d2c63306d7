package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
)

// PanelSection is the name of the section holding window settings.
const PanelSection = "panel"

// Environment variables consulted by ResolveConfigPath and ApplyEnvOverrides.
const (
	EnvConfigPath = "LAUNCHPANEL_CONFIG"
	EnvTPS        = "LAUNCHPANEL_TPS"
)

// PanelConfig holds the window settings of the panel.
type PanelConfig struct {
	// Title is the window title.
	Title string
	// FontSize is the label font size in pixels.
	FontSize float64
	// FontPath points at a TTF/OTF file; empty selects the embedded Go Bold font.
	FontPath string
	// TPS caps the update rate. 0 runs the loop unthrottled.
	TPS int
	// Background is the clear color of every frame.
	Background color.RGBA
}

// DefaultPanelConfig returns the settings used when the panel section is absent.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Title:      "Emulation Center",
		FontSize:   24,
		TPS:        60,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks the panel settings.
func (p PanelConfig) Validate() error {
	if p.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", p.FontSize)
	}
	if p.TPS < 0 {
		return fmt.Errorf("tps must be 0 (unthrottled) or positive, got %d", p.TPS)
	}
	return nil
}

// handlePanel applies one entry of the panel section.
func handlePanel(p *PanelConfig, key, value string) error {
	switch key {
	case "title":
		p.Title = value
	case "font_size":
		size, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return sectionError(PanelSection, "font_size: %q is not a number", value)
		}
		p.FontSize = size
	case "font_path":
		p.FontPath = expandPath(value)
	case "tps":
		tps, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return sectionError(PanelSection, "tps: %q is not an integer", value)
		}
		p.TPS = tps
	case "background_red", "background_green", "background_blue":
		c, err := parseColorComponent(value)
		if err != nil {
			return sectionError(PanelSection, "%s: %v", key, err)
		}
		switch key {
		case "background_red":
			p.Background.R = c
		case "background_green":
			p.Background.G = c
		case "background_blue":
			p.Background.B = c
		}
	}
	return nil
}

// LauncherConfig is the fully loaded config file.
type LauncherConfig struct {
	// Source is the path (or other identifier) the config was read from.
	Source string
	// Format is the syntax the source was parsed with.
	Format Format
	// Panel holds the window settings.
	Panel PanelConfig
	// Buttons is the ordered button list, at most MaxButtons long.
	Buttons []components.LauncherButton
}

// Load reads and parses the config file at path.
// Every failure is returned as a *ConfigError naming the path.
func Load(path string, opts LoadOptions, logger zerolog.Logger) (*LauncherConfig, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, withSource(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, withSource(path, fmt.Errorf("reading config file: %w", err))
	}

	return LoadBytes(path, format, data, opts, logger)
}

// LoadBytes parses an in-memory config source.
func LoadBytes(source string, format Format, data []byte, opts LoadOptions, logger zerolog.Logger) (*LauncherConfig, error) {
	logger = logger.With().Str("component", "ConfigLoader").Logger()

	panel := DefaultPanelConfig()
	buttons := NewButtonLoader(opts, logger)

	handler := func(section, key, value string) error {
		if section == PanelSection {
			return handlePanel(&panel, key, value)
		}
		return buttons.Handle(section, key, value)
	}

	if err := Parse(format, data, handler); err != nil {
		return nil, withSource(source, err)
	}

	ApplyEnvOverrides(&panel, logger)
	if err := panel.Validate(); err != nil {
		return nil, withSource(source, &ConfigError{Section: PanelSection, Err: err})
	}

	cfg := &LauncherConfig{
		Source:  source,
		Format:  format,
		Panel:   panel,
		Buttons: buttons.Buttons(),
	}
	if len(cfg.Buttons) == 0 {
		logger.Warn().Str("source", source).Msg("no buttons configured")
	}
	logger.Info().Str("source", source).Int("buttons", len(cfg.Buttons)).Msg("config loaded")
	return cfg, nil
}

// ApplyEnvOverrides applies environment overrides to the panel settings.
// Environment variables take precedence over the file.
func ApplyEnvOverrides(p *PanelConfig, logger zerolog.Logger) {
	if v := os.Getenv(EnvTPS); v != "" {
		tps, err := strconv.Atoi(v)
		if err != nil {
			logger.Warn().Str("env", EnvTPS).Str("value", v).Msg("ignoring non-integer override")
			return
		}
		p.TPS = tps
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "panel.yaml"
	}
	return filepath.Join(home, ".config", "launchpanel", "panel.yaml")
}

// ResolveConfigPath picks the config path: an explicit flag value wins, then
// LAUNCHPANEL_CONFIG, then DefaultConfigPath.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	if v := os.Getenv(EnvConfigPath); v != "" {
		return expandPath(v)
	}
	return DefaultConfigPath()
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

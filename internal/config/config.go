// Package config provides configuration types and defaults for vigil.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vigil/internal/keys"
	"github.com/zjrosen/vigil/internal/log"
)

// Supported terminal backends.
const (
	BackendTea   = "tea"
	BackendTcell = "tcell"
)

// Config holds all configuration options for vigil.
type Config struct {
	Backend     string            `mapstructure:"backend" yaml:"backend"`       // "tea" (default) or "tcell"
	Debug       bool              `mapstructure:"debug" yaml:"debug"`           // Enable the debug log
	LogFile     string            `mapstructure:"log_file" yaml:"log_file"`     // Debug log path
	WatchFile   bool              `mapstructure:"watch_file" yaml:"watch_file"` // Report writes to the open file by other programs
	UI          UIConfig          `mapstructure:"ui" yaml:"ui"`
	Theme       ThemeConfig       `mapstructure:"theme" yaml:"theme"`
	Keybindings KeybindingsConfig `mapstructure:"keybindings" yaml:"keybindings"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowChanges bool `mapstructure:"show_changes" yaml:"show_changes"` // Show +added/-removed line counts in the status line
	ShowHelp    bool `mapstructure:"show_help" yaml:"show_help"`       // Show a key hint on the message line (tea backend)
}

// ThemeConfig holds status line colors as hex strings.
type ThemeConfig struct {
	ModeFg string `mapstructure:"mode_fg" yaml:"mode_fg"`
	ModeBg string `mapstructure:"mode_bg" yaml:"mode_bg"`
	BarFg  string `mapstructure:"bar_fg" yaml:"bar_fg"`
	BarBg  string `mapstructure:"bar_bg" yaml:"bar_bg"`
}

// KeybindingsConfig overrides Normal mode keys. Values use bubbletea key
// names such as "q" or "ctrl+s".
type KeybindingsConfig struct {
	Quit string `mapstructure:"quit" yaml:"quit"`
	Save string `mapstructure:"save" yaml:"save"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Backend:   BackendTea,
		Debug:     false,
		LogFile:   "vigil.log",
		WatchFile: true,
		UI: UIConfig{
			ShowChanges: true,
			ShowHelp:    false,
		},
		Theme: ThemeConfig{
			ModeFg: "#1E1E2E",
			ModeBg: "#89B4FA",
			BarFg:  "#CDD6F4",
			BarBg:  "#313244",
		},
		Keybindings: KeybindingsConfig{
			Quit: "q",
			Save: "ctrl+s",
		},
	}
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateBackend(cfg.Backend); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	return ValidateKeybindings(cfg.Keybindings)
}

// ValidateBackend checks the backend name.
func ValidateBackend(backend string) error {
	switch backend {
	case BackendTea, BackendTcell:
		return nil
	default:
		return fmt.Errorf("backend: unknown backend %q (want %q or %q)", backend, BackendTea, BackendTcell)
	}
}

// ValidateTheme checks that every color is empty or a "#RRGGBB" hex color.
func ValidateTheme(theme ThemeConfig) error {
	colors := []struct {
		key   string
		value string
	}{
		{"mode_fg", theme.ModeFg},
		{"mode_bg", theme.ModeBg},
		{"bar_fg", theme.BarFg},
		{"bar_bg", theme.BarBg},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if !hexColorPattern.MatchString(c.value) {
			return fmt.Errorf("theme.%s: invalid hex color %q", c.key, c.value)
		}
	}
	return nil
}

// ValidateKeybindings checks that overridden keys are set, distinct, and
// not taken by a fixed Normal mode binding.
func ValidateKeybindings(kb KeybindingsConfig) error {
	if kb.Quit == "" {
		return errors.New("keybindings.quit: key is required")
	}
	if kb.Save == "" {
		return errors.New("keybindings.save: key is required")
	}
	if kb.Quit == kb.Save {
		return fmt.Errorf("keybindings: quit and save are both bound to %q", kb.Quit)
	}

	km := keys.DefaultKeyMap()
	for _, o := range []struct{ name, key string }{{"quit", kb.Quit}, {"save", kb.Save}} {
		if b, ok := km.BoundTo(o.key); ok {
			return fmt.Errorf("keybindings.%s: %q is already used by %s", o.name, o.key, b.Help().Desc)
		}
	}
	return nil
}

// Dump renders cfg as YAML, as used by "vigil config".
func Dump(cfg Config) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return buf.String(), nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Vigil Configuration

# Terminal backend: "tea" (default) or "tcell"
backend: tea

# Debug logging (also enabled by --debug or VIGIL_DEBUG=1)
debug: false
log_file: vigil.log

# Tell me when another program writes the file I'm editing
watch_file: true

# UI settings
ui:
  show_changes: true   # Show +added/-removed line counts in the status line
  show_help: false     # Show a key hint on the message line (tea backend only)

# Status line colors (hex)
theme:
  mode_fg: "#1E1E2E"
  mode_bg: "#89B4FA"
  bar_fg: "#CDD6F4"
  bar_bg: "#313244"

# Normal mode key overrides, using key names like "q", "ctrl+q", "ctrl+s"
keybindings:
  quit: q
  save: ctrl+s
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string, logger *log.Logger) error {
	logger.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		logger.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	logger.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

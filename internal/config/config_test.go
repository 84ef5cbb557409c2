package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vigil/internal/log"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, BackendTea, cfg.Backend)
	require.False(t, cfg.Debug)
	require.Equal(t, "vigil.log", cfg.LogFile)
	require.True(t, cfg.WatchFile)
	require.True(t, cfg.UI.ShowChanges)
	require.Equal(t, "q", cfg.Keybindings.Quit)
	require.Equal(t, "ctrl+s", cfg.Keybindings.Save)
	require.NoError(t, Validate(cfg), "defaults must validate")
}

func TestValidateBackend(t *testing.T) {
	require.NoError(t, ValidateBackend("tea"))
	require.NoError(t, ValidateBackend("tcell"))

	err := ValidateBackend("ncurses")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown backend "ncurses"`)

	require.Error(t, ValidateBackend(""))
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		name    string
		theme   ThemeConfig
		wantErr string
	}{
		{name: "defaults", theme: Defaults().Theme},
		{name: "empty uses terminal colors", theme: ThemeConfig{}},
		{name: "lowercase hex", theme: ThemeConfig{ModeFg: "#abcdef"}},
		{name: "missing hash", theme: ThemeConfig{ModeBg: "89B4FA"}, wantErr: "theme.mode_bg"},
		{name: "short form", theme: ThemeConfig{BarFg: "#fff"}, wantErr: "theme.bar_fg"},
		{name: "not hex", theme: ThemeConfig{BarBg: "#GGGGGG"}, wantErr: "theme.bar_bg"},
		{name: "color name", theme: ThemeConfig{ModeFg: "red"}, wantErr: `invalid hex color "red"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTheme(tt.theme)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateKeybindings(t *testing.T) {
	require.NoError(t, ValidateKeybindings(KeybindingsConfig{Quit: "ctrl+q", Save: "ctrl+s"}))

	err := ValidateKeybindings(KeybindingsConfig{Save: "ctrl+s"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "keybindings.quit")

	err = ValidateKeybindings(KeybindingsConfig{Quit: "q"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "keybindings.save")

	err = ValidateKeybindings(KeybindingsConfig{Quit: "ctrl+s", Save: "ctrl+s"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "both bound")
}

func TestValidateKeybindings_RejectsFixedKeys(t *testing.T) {
	tests := []struct {
		name    string
		kb      KeybindingsConfig
		wantErr string
	}{
		{"quit on delete line", KeybindingsConfig{Quit: "d", Save: "ctrl+s"}, `keybindings.quit: "d" is already used by delete line`},
		{"quit on arrow", KeybindingsConfig{Quit: "up", Save: "ctrl+s"}, `keybindings.quit: "up" is already used by move up`},
		{"save on insert", KeybindingsConfig{Quit: "q", Save: "i"}, `keybindings.save: "i" is already used by insert mode`},
		{"save on page down", KeybindingsConfig{Quit: "q", Save: "ctrl+f"}, `keybindings.save: "ctrl+f" is already used by page down`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeybindings(tt.kb)
			require.EqualError(t, err, tt.wantErr)
		})
	}

	require.NoError(t, ValidateKeybindings(KeybindingsConfig{Quit: "ctrl+q", Save: "ctrl+w"}))
	require.NoError(t, ValidateKeybindings(Defaults().Keybindings))
}

func TestValidate_ReportsFirstProblem(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = "gui"
	cfg.Theme.ModeFg = "nope"

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "backend")
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	require.Equal(t, Defaults(), cfg)
}

func TestDump(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = BackendTcell
	cfg.Keybindings.Quit = "ctrl+q"

	out, err := Dump(cfg)
	require.NoError(t, err)
	require.Contains(t, out, "backend: tcell\n")
	require.Contains(t, out, "  quit: ctrl+q\n")

	var back Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	require.Equal(t, cfg, back)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vigil", "config.yaml")
	var out bytes.Buffer

	require.NoError(t, WriteDefaultConfig(path, log.NewWriter(&out)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
	require.Contains(t, out.String(), "Created default config")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteDefaultConfig_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := WriteDefaultConfig(filepath.Join(blocker, "config.yaml"), log.Nop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating config directory")
}

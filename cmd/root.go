package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/zjrosen/vigil/internal/buffer"
	"github.com/zjrosen/vigil/internal/config"
	"github.com/zjrosen/vigil/internal/editor"
	"github.com/zjrosen/vigil/internal/keys"
	"github.com/zjrosen/vigil/internal/log"
	"github.com/zjrosen/vigil/internal/terminal"
	"github.com/zjrosen/vigil/internal/tui"
	"github.com/zjrosen/vigil/internal/watcher"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply can't leak into the first keystrokes.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

// errNotTerminal is returned when stdin is not an interactive terminal.
var errNotTerminal = errors.New("stdin is not a terminal")

var rootCmd = &cobra.Command{
	Use:          "vigil [file]",
	Short:        "A small modal text editor for the terminal",
	Long:         `A modal (Normal/Insert) terminal text editor. Opens file if given, otherwise starts with an empty, unnamed buffer.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vigil/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also VIGIL_DEBUG=1)")
	rootCmd.Flags().String("backend", "",
		`terminal backend: "tea" or "tcell"`)

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("backend", rootCmd.Flags().Lookup("backend"))
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// setDefaults registers every key so env vars and flags can override keys
// missing from the file.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("backend", defaults.Backend)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("watch_file", defaults.WatchFile)
	v.SetDefault("ui.show_changes", defaults.UI.ShowChanges)
	v.SetDefault("ui.show_help", defaults.UI.ShowHelp)
	v.SetDefault("theme.mode_fg", defaults.Theme.ModeFg)
	v.SetDefault("theme.mode_bg", defaults.Theme.ModeBg)
	v.SetDefault("theme.bar_fg", defaults.Theme.BarFg)
	v.SetDefault("theme.bar_bg", defaults.Theme.BarBg)
	v.SetDefault("keybindings.quit", defaults.Keybindings.Quit)
	v.SetDefault("keybindings.save", defaults.Keybindings.Save)
}

// userConfigPath is where the default config is written when none exists.
func userConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vigil", "config.yaml"), nil
}

// loadConfig reads the configuration into v and decodes it.
//
// Config lookup order:
//  1. --config flag
//  2. .vigil/config.yaml (current directory)
//  3. ~/.config/vigil/config.yaml (user config, created with defaults if missing)
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("VIGIL")
	_ = v.BindEnv("debug")

	userPath, homeErr := userConfigPath()

	switch {
	case explicit != "":
		v.SetConfigFile(explicit)
	case fileExists(filepath.Join(".vigil", "config.yaml")):
		v.SetConfigFile(filepath.Join(".vigil", "config.yaml"))
	case homeErr == nil:
		v.AddConfigPath(filepath.Dir(userPath))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
		// No config anywhere: create the user config and carry on with
		// defaults if that fails.
		if homeErr == nil && config.WriteDefaultConfig(userPath, log.Nop()) == nil {
			v.SetConfigFile(userPath)
			_ = v.ReadInConfig()
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runEditor(_ *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	return edit(cfg, path, func() bool { return term.IsTerminal(int(os.Stdin.Fd())) })
}

// edit opens path and runs the configured backend until the user quits.
func edit(c config.Config, path string, isTerminal func() bool) error {
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.Nop()
	if c.Debug {
		var err error
		logger, err = log.New(c.LogFile)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer func() { _ = logger.Close() }()
		logger.Info(log.CatConfig, "Vigil starting", "version", version, "backend", c.Backend, "config", viper.ConfigFileUsed())
	}

	buf, err := buffer.Load(path)
	if err != nil {
		logger.ErrorErr(log.CatBuffer, "Load failed", err, "path", path)
		return err
	}
	logger.Info(log.CatBuffer, "Loaded", "path", path, "lines", buf.LineCount())

	if !isTerminal() {
		return errNotTerminal
	}

	km := keys.DefaultKeyMap().WithOverrides(keys.Overrides{
		Quit: c.Keybindings.Quit,
		Save: c.Keybindings.Save,
	})
	opts := []editor.Option{editor.WithLogger(logger), editor.WithKeyMap(km)}

	var changes <-chan struct{}
	if c.WatchFile && path != "" {
		w, err := watcher.New(watcher.Config{
			Path:        path,
			DebounceDur: watcher.DefaultConfig(path).DebounceDur,
			Logger:      logger,
		})
		if err == nil {
			changes, err = w.Start()
			defer func() { _ = w.Stop() }()
		}
		if err != nil {
			logger.Warn(log.CatWatcher, "File watching disabled", "error", err)
		}
	}

	switch c.Backend {
	case config.BackendTcell:
		return runTcell(c, buf, changes, logger, opts)
	default:
		ctl := editor.New(buf, 0, 0, opts...)
		return tui.Run(ctl, tui.Options{
			Theme:       c.Theme,
			ShowChanges: c.UI.ShowChanges,
			ShowHelp:    c.UI.ShowHelp,
			KeyMap:      km,
			Changes:     changes,
			Logger:      logger,
		})
	}
}

func runTcell(c config.Config, buf *buffer.Buffer, changes <-chan struct{}, logger *log.Logger, opts []editor.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}

	return terminal.Session(screen, func() error {
		w, h := screen.Size()
		ctl := editor.New(buf, w, h, opts...)
		scr := terminal.New(screen, terminal.Options{
			Theme:       c.Theme,
			ShowChanges: c.UI.ShowChanges,
			Logger:      logger,
		})

		done := make(chan struct{})
		defer close(done)
		if changes != nil {
			go func() {
				for {
					select {
					case <-changes:
						scr.NotifyFileChanged()
					case <-done:
						return
					}
				}
			}()
		}

		return ctl.Run(scr, scr)
	})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vigil/internal/config"
	"github.com/zjrosen/vigil/internal/log"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Long:  `Write the commented default configuration to path (default: ~/.config/vigil/config.yaml). An existing file is left alone unless --force is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	out, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		if path, err = userConfigPath(); err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
	}

	force, _ := cmd.Flags().GetBool("force")
	if fileExists(path) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path, log.Nop()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return err
}

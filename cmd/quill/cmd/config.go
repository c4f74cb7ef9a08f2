package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/quill/pkg/core/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspects the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the effective configuration",
	Long: `Prints the configuration after defaults, environment expansion and
command line overrides have been applied.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Prints the configuration file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "output format (toml, yaml)")
	configCmd.AddCommand(configShowCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return s.cfg.Encode(cmd.OutOrStdout(), configFormat)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	_, path, err := loadConfig()
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "no config file found, using defaults (searched $%s", config.EnvConfigPath)
		for _, p := range config.DefaultPaths() {
			fmt.Fprintf(cmd.OutOrStdout(), ", %s", p)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ")")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

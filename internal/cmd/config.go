package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/justrnr500/wildcd/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the wcd configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file, .env files,
WCD_* environment variables and command-line flags.`,
	RunE: runConfigShow,
}

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		fmt.Fprintln(cmd.OutOrStdout(), "Already exists:", path)
		return nil
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Created", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", e.configPath)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(e.cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

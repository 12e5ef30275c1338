// Package cmd provides the CLI commands for wcd.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wcd",
	Short: "Resolve wildcard paths and cd into them",
	Long: `wcd resolves a path containing wildcard segments into the directories and
files that match it, one segment at a time.

Wildcards:
  *   zero or more characters
  ?   exactly one character
  #   exactly one digit

The part of the path before the first wildcard segment must exist. Every
segment after it is matched against the entries found at that depth, so
"~/src/*/cmd" lists the cmd entry of every project under ~/src.

Use 'wcd shell bash' to install a wrapper that changes directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig   string
	flagLogLevel string
	flagBase     string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{printf "wcd %s\ncommit: %s\nbuilt: %s\n" .Version "` + Commit + `" "` + BuildDate + `"}}`)

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/wcd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&flagBase, "base", "b", "", "Directory relative expressions are resolved against")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/justrnr500/wildcd/internal/config"
	"github.com/justrnr500/wildcd/internal/storage"
	"github.com/justrnr500/wildcd/internal/wpath"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration health",
	Long: `Run health checks on the wcd setup to diagnose common issues.

Checks:
  - Config validity (config.yaml parses without errors)
  - Base directory exists
  - Aliases point to existing directories
  - Exclude globs are well formed
  - History database opens (when enabled)`,
	RunE: runDoctor,
}

var doctorJSON bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output as JSON")
}

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name   string   `json:"name"`
	Passed bool     `json:"passed"`
	Issues []string `json:"issues,omitempty"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	checks := []CheckResult{
		checkConfigValidity(e.configPath),
		checkBaseDir(e.cfg),
		checkAliases(e.cfg),
		checkExclude(e.cfg),
		checkHistory(e.cfg),
	}

	return writeChecks(cmd.OutOrStdout(), checks, doctorJSON)
}

func writeChecks(out io.Writer, checks []CheckResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(checks)
	}

	allPassed := true
	for _, c := range checks {
		if c.Passed {
			fmt.Fprintf(out, "✓ %s\n", c.Name)
		} else {
			allPassed = false
			fmt.Fprintf(out, "✗ %s\n", c.Name)
			for _, issue := range c.Issues {
				fmt.Fprintf(out, "    %s\n", issue)
			}
		}
	}

	if !allPassed {
		return fmt.Errorf("some checks failed")
	}

	return nil
}

func checkConfigValidity(configPath string) CheckResult {
	name := "Config valid"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return CheckResult{Name: name + " (using defaults)", Passed: true}
	}

	if _, err := config.Load(configPath); err != nil {
		return CheckResult{Name: name, Passed: false, Issues: []string{err.Error()}}
	}

	return CheckResult{Name: name, Passed: true}
}

func checkBaseDir(cfg *config.Config) CheckResult {
	name := "Base directory exists"

	base := cfg.Base()
	if base == "" {
		return CheckResult{Name: name + " (working directory)", Passed: true}
	}
	if info, err := fileSystem.Stat(base); err != nil || !info.IsDir() {
		return CheckResult{Name: name, Passed: false, Issues: []string{fmt.Sprintf("%s is not a directory", base)}}
	}
	return CheckResult{Name: name, Passed: true}
}

func checkAliases(cfg *config.Config) CheckResult {
	name := fmt.Sprintf("Aliases resolve (%d)", len(cfg.Aliases))

	var broken []string
	for _, alias := range cfg.AliasNames() {
		dir, err := cfg.ExpandAlias(config.AliasPrefix + alias)
		if err != nil {
			broken = append(broken, err.Error())
			continue
		}
		if info, err := fileSystem.Stat(dir); err != nil || !info.IsDir() {
			broken = append(broken, fmt.Sprintf("@%s -> %s", alias, dir))
		}
	}

	if len(broken) > 0 {
		return CheckResult{Name: name, Passed: false, Issues: broken}
	}
	return CheckResult{Name: name, Passed: true}
}

func checkExclude(cfg *config.Config) CheckResult {
	name := "Exclude globs valid"

	if _, err := wpath.NewExclude(cfg.Exclude); err != nil {
		return CheckResult{Name: name, Passed: false, Issues: []string{err.Error()}}
	}
	return CheckResult{Name: name, Passed: true}
}

func checkHistory(cfg *config.Config) CheckResult {
	name := "History database opens"

	if !cfg.History.Enabled {
		return CheckResult{Name: "History disabled", Passed: true}
	}

	h, err := storage.OpenHistory(cfg.HistoryPath())
	if err != nil {
		return CheckResult{Name: name, Passed: false, Issues: []string{err.Error()}}
	}
	defer h.Close()

	count, err := h.Count()
	if err != nil {
		return CheckResult{Name: name, Passed: false, Issues: []string{fmt.Sprintf("count visits: %v", err)}}
	}
	return CheckResult{Name: fmt.Sprintf("History database opens (%d visits)", count), Passed: true}
}

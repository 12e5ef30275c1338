package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justrnr500/wildcd/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history [prefix]",
	Short: "Show directories resolved by wcd cd",
	Long: `Show the directories 'wcd cd' resolved to, most recent first.

Examples:
  wcd history
  wcd history ~/src --limit 10
  wcd history --prune
  wcd history --clear
  wcd history --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyJSON  bool
	historyLimit int
	historyClear bool
	historyPrune bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Limit number of results (0 = all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded visits")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "Delete visits to directories that no longer exist")
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	h, err := e.openHistory()
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("history is disabled (set history.enabled in %s)", e.configPath)
	}
	defer h.Close()

	out := cmd.OutOrStdout()

	if historyClear {
		if err := h.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "✓ History cleared")
		return nil
	}

	if historyPrune {
		removed, err := h.Prune(func(p string) bool {
			info, err := os.Stat(p)
			return err == nil && info.IsDir()
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Pruned %d visit(s)\n", removed)
		return nil
	}

	opts := storage.ListOptions{Limit: historyLimit}
	if len(args) == 1 {
		opts.Prefix = args[0]
	}

	visits, err := h.List(opts)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	return writeHistory(out, visits, historyJSON)
}

func writeHistory(out io.Writer, visits []*storage.Visit, asJSON bool) error {
	if asJSON {
		if visits == nil {
			visits = []*storage.Visit{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"visits": visits,
			"count":  len(visits),
		})
	}

	if len(visits) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAST VISITED\tCOUNT\tPATH")
	fmt.Fprintln(w, "────────────\t─────\t────")
	for _, v := range visits {
		fmt.Fprintf(w, "%s\t%d\t%s\n", v.LastVisited.Local().Format("2006-01-02 15:04"), v.Count, v.Path)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d visit(s)\n", len(visits))
	return nil
}

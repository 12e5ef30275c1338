package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/justrnr500/wildcd/internal/wpath"
)

var findCmd = &cobra.Command{
	Use:   "find <expression>",
	Short: "List every path matching a wildcard expression",
	Long: `List every path matching a wildcard expression, one per line, in the order
the directories are enumerated.

Quote the expression so the shell does not expand it first.

Examples:
  wcd find '~/src/*/cmd'
  wcd find 'logs/202#-##-*/*.log'
  wcd ls '@uni/21*/Ein*'
  wcd find '/srv/*/releases/v#*' --limit 5
  wcd find '*/*' --json`,
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE:    runFind,
}

var (
	findJSON  bool
	findNull  bool
	findLimit int
)

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Output as JSON")
	findCmd.Flags().BoolVarP(&findNull, "null", "0", false, "Separate paths with NUL instead of newline")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Stop after this many matches (0 = no limit)")
}

func runFind(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	w, err := e.compile(args[0])
	if err != nil {
		return err
	}

	return writeMatches(cmd.OutOrStdout(), args[0], w.Matches(), findOptions{
		JSON:  findJSON,
		Null:  findNull,
		Limit: findLimit,
	})
}

type findOptions struct {
	JSON  bool
	Null  bool
	Limit int
}

// collectMatches drains it, stopping after limit matches when limit > 0.
func collectMatches(it *wpath.Iterator, limit int) []string {
	var paths []string
	for p := range it.All() {
		paths = append(paths, p)
		if limit > 0 && len(paths) >= limit {
			break
		}
	}
	return paths
}

func writeMatches(w io.Writer, expr string, it *wpath.Iterator, opts findOptions) error {
	if opts.JSON {
		paths := collectMatches(it, opts.Limit)
		if paths == nil {
			paths = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"expression": expr,
			"matches":    paths,
			"count":      len(paths),
		})
	}

	sep := "\n"
	if opts.Null {
		sep = "\x00"
	}

	count := 0
	for p := range it.All() {
		fmt.Fprint(w, p, sep)
		count++
		if opts.Limit > 0 && count >= opts.Limit {
			break
		}
	}

	if count == 0 && !opts.Null {
		fmt.Fprintln(w, "Nothing found!")
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justrnr500/wildcd/internal/storage"
	"github.com/justrnr500/wildcd/internal/wpath"
)

var cdCmd = &cobra.Command{
	Use:   "cd <expression>",
	Short: "Resolve a wildcard expression to a single directory",
	Long: `Resolve a wildcard expression to exactly one directory and print it.

A process cannot change its parent shell's directory, so this command only
prints the target. Install the shell wrapper ('wcd shell bash') to cd into it.

When several directories match they are listed on stderr and the command
fails; narrow the expression or choose one with --pick.

Examples:
  wcd cd '~/src/wild*'
  wcd cd '@uni/21*/Ein*'
  wcd cd 'releases/v#.#*' --pick 2`,
	Args: cobra.ExactArgs(1),
	RunE: runCd,
}

var cdPick int

var (
	// ErrNothingFound is returned when no directory matches.
	ErrNothingFound = errors.New("nothing found")
	// ErrAmbiguous is returned when several directories match.
	ErrAmbiguous = errors.New("too many possible paths")
)

func init() {
	rootCmd.AddCommand(cdCmd)
	cdCmd.Flags().IntVarP(&cdPick, "pick", "p", 0, "Choose the n-th matching directory (1-based)")
}

func runCd(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	w, err := e.compile(args[0])
	if err != nil {
		return err
	}

	target, err := resolveDir(cmd.ErrOrStderr(), w, cdPick)
	if err != nil {
		return err
	}

	h, err := e.openHistory()
	if err != nil {
		e.log.Warnf("%v", err)
	} else if h != nil {
		defer h.Close()
		if err := recordVisit(h, target, args[0]); err != nil {
			e.log.Warnf("%v", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

// resolveDir returns the single directory w matches. Candidates are listed
// on stderr when the choice is ambiguous. pick selects the n-th directory
// when positive.
func resolveDir(stderr io.Writer, w *wpath.WildcardPath, pick int) (string, error) {
	var dirs []string
	for p := range w.MatchingPaths() {
		info, err := fileSystem.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, p)
	}

	switch {
	case len(dirs) == 0:
		return "", fmt.Errorf("%w: %s", ErrNothingFound, w)
	case pick > 0:
		if pick > len(dirs) {
			return "", fmt.Errorf("--pick %d out of range: %d directories match", pick, len(dirs))
		}
		return dirs[pick-1], nil
	case len(dirs) == 1:
		return dirs[0], nil
	}

	index := color.New(color.FgCyan)
	for i, d := range dirs {
		fmt.Fprintf(stderr, "%s %s\n", index.Sprintf("%3d", i+1), d)
	}
	return "", fmt.Errorf("%w: %d directories match %s", ErrAmbiguous, len(dirs), w)
}

func recordVisit(h *storage.History, target, expr string) error {
	return h.Record(target, expr, time.Now())
}

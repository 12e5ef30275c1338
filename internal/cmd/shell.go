package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell <bash|zsh|fish>",
	Short: "Print a shell function that changes directory",
	Long: `Print a shell function wrapping 'wcd cd' so the resolved directory becomes
the shell's working directory.

Add it to your shell startup file:
  bash:  eval "$(wcd shell bash)"    in ~/.bashrc
  zsh:   eval "$(wcd shell zsh)"     in ~/.zshrc
  fish:  wcd shell fish | source     in ~/.config/fish/config.fish`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish"},
	RunE:      runShell,
}

var shellName string

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVarP(&shellName, "name", "n", "cdw", "Name of the generated function")
}

const posixWrapper = `{{name}}() {
	local target
	target="$(command wcd cd "$@")" || return
	builtin cd -- "$target"
}
`

const fishWrapper = `function {{name}}
	set -l target (command wcd cd $argv); or return
	builtin cd -- $target
end
`

func runShell(cmd *cobra.Command, args []string) error {
	return writeShellWrapper(cmd.OutOrStdout(), args[0], shellName)
}

func writeShellWrapper(w io.Writer, shell, name string) error {
	if name == "" || strings.ContainsAny(name, " \t\n;&|$`'\"(){}") {
		return fmt.Errorf("invalid function name %q", name)
	}

	var tmpl string
	switch shell {
	case "bash", "zsh", "sh":
		tmpl = posixWrapper
	case "fish":
		tmpl = fishWrapper
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", shell)
	}

	_, err := io.WriteString(w, strings.ReplaceAll(tmpl, "{{name}}", name))
	return err
}

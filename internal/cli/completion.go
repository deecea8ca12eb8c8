package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphgrid/pkg/cache"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a completion script for the named shell.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion " + strings.Join(completionShells, "|"),
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for glyphgrid to stdout.

Completions cover subcommands, flags and the cache backend names accepted
by --cache. For example:

  $ source <(glyphgrid completion bash)
  $ glyphgrid completion zsh > "${fpath[1]}/_glyphgrid"
  $ glyphgrid completion fish > ~/.config/fish/completions/glyphgrid.fish
  PS> glyphgrid completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), c.out()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(w)
			default:
				return root.GenBashCompletionV2(w, true)
			}
		},
	}
}

// completeCacheBackends completes the value of a --cache flag.
func completeCacheBackends(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, b := range cache.Backends {
		if strings.HasPrefix(b, prefix) {
			out = append(out, b)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

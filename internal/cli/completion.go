package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts for the hedviz binary.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for hedviz and print it to stdout.

Load it for the current session:

  $ source <(hedviz completion bash)
  $ hedviz completion fish | source
  PS> hedviz completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  # bash (Linux)
  $ hedviz completion bash > /etc/bash_completion.d/hedviz
  # bash (macOS, with Homebrew)
  $ hedviz completion bash > $(brew --prefix)/etc/bash_completion.d/hedviz
  # zsh (requires compinit; run "autoload -U compinit; compinit" once)
  $ hedviz completion zsh > "${fpath[1]}/_hedviz"
  # fish
  $ hedviz completion fish > ~/.config/fish/completions/hedviz.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}

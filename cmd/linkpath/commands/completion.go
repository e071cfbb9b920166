package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:
  $ source <(linkpath completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ linkpath completion bash > /etc/bash_completion.d/linkpath
  # macOS:
  $ linkpath completion bash > /usr/local/etc/bash_completion.d/linkpath

Zsh:
  $ linkpath completion zsh > "${fpath[1]}/_linkpath"

Fish:
  $ linkpath completion fish > ~/.config/fish/completions/linkpath.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				_, err := fmt.Fprint(out, bashCompletion)
				return err
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletion(out)
			}
			return nil
		},
	}
}

// bashCompletion is a minimal handwritten completion script.
const bashCompletion = `
# linkpath bash completion

_linkpath_completion() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="path length batch stats reach serve completion help"

    case "${prev}" in
        path)
            COMPREPLY=( $(compgen -W "--through --random-through --export --format --help" -- ${cur}) )
            return 0
            ;;
        batch)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        --nodes|--edges|--config|--export|--out)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "json csv yaml" -- ${cur}) )
            return 0
            ;;
        --log-level)
            COMPREPLY=( $(compgen -W "debug info warn error" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- ${cur}) )
            return 0
            ;;
        *)
            ;;
    esac

    # Global Flags
    if [[ ${cur} == -* ]] ; then
        COMPREPLY=( $(compgen -W "--help --version --config --nodes --edges --strict --max-depth --filter --seed --no-color --json-logs --log-level" -- ${cur}) )
        return 0
    fi

    # Subcommands
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
}

complete -F _linkpath_completion linkpath
`

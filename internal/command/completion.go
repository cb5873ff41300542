// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/meta"
)

const bashCompletionScript = `# bash completion for bblctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_bblctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "standings players player teams team match schedule serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local conn="--base-url --league --season --timeout --retries"
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema --tldr $conn"

    case "$cmd" in
        standings)
            local opts="$common --all"
            ;;
        players)
            local opts="$common --search -q --min-games --by --order --top -n"
            ;;
        team)
            local opts="$common --totals"
            ;;
        schedule)
            local opts="$common --team --status"
            ;;
        serve)
            local opts="--addr --metrics --no-metrics --tldr $conn"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --status)
            COMPREPLY=( $(compgen -W "all upcoming completed" -- "$cur") )
            return 0
            ;;
        --by)
            COMPREPLY=( $(compgen -W "name pts ast stl blk 3pm g" -- "$cur") )
            return 0
            ;;
        --order)
            COMPREPLY=( $(compgen -W "asc desc" -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _bblctl bblctl
`

const zshCompletionScript = `#compdef bblctl

_bblctl() {
  local -a cmds
  cmds=(
    'standings:league table'
    'players:season leaderboard'
    'player:player profile'
    'teams:team list'
    'team:team roster'
    'match:match box score'
    'schedule:season schedule'
    'serve:serve the JSON API'
    'completion:generate shell completion script'
  )

  local -a conn
  conn=(
  '--base-url[SportsPress API root]:url'
  '--league[league ID]:league'
  '--season[season ID]:season'
  '--timeout[per-request timeout]:duration'
  '--retries[retries for failed requests]:retries'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  '--tldr[show tldr page]'
  $conn
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'bblctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    standings)
      _arguments -C $common '--all[every table]'
      ;;
    players)
      _arguments -C \
        $common \
        '(-q --search)'{-q,--search}'[name contains]:text' \
        '--min-games[minimum games]:games' \
        '--by[leaderboard column]:column:(name pts ast stl blk 3pm g)' \
        '--order[sort order]:order:(asc desc)' \
        '(-n --top)'{-n,--top}'[limit rows]:rows'
      ;;
    player)
      _arguments -C $common '1:player id or slug'
      ;;
    team)
      _arguments -C $common '--totals[season totals]' '1:team id'
      ;;
    match)
      _arguments -C $common '1:match id'
      ;;
    schedule)
      _arguments -C \
        $common \
        '--team[team ID]:team' \
        '--status[match status]:status:(all upcoming completed)'
      ;;
    serve)
      _arguments -C \
        '--addr[listen address]:addr' \
        '--metrics[expose metrics]' \
        '--no-metrics[hide metrics]' \
        '--tldr[show tldr page]' \
        $conn
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _bblctl bblctl
`

// CompletionCommandAction prints the completion script for the named shell,
// or for $SHELL when none is named.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		fmt.Fprintln(os.Stderr, "usage: bblctl completion [bash|zsh]")
	default:
		return fmt.Errorf("unsupported shell %q, must be bash or zsh", shell)
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "bblctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}

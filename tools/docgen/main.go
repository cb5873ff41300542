// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/command"
)

// Minimal doc generator. Walks the bblctl command tree and generates:
//   - docs/commands/<cmd>.md
//   - docs/man/share/man1/bblctl-<cmd>.1 via md2man
//   - docs/tldr/bblctl-<cmd>.md from the quick examples

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir %s: %v", dir, err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"bblctl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		md := renderMarkdown(cmd, quickExamples[cmd.Name])

		mdPath := filepath.Join(commandsDir, cmd.Name+".md")
		if err := writeFileIfChanged(mdPath, []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("bblctl-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render([]byte(md)), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, quickExamples[cmd.Name])
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("bblctl-%s.md", cmd.Name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

type example struct {
	Desc string
	Cmd  string
}

var quickExamples = map[string][]example{
	"standings": {
		{"Show the current league table", "bblctl standings"},
		{"Show every table for the season as JSON", "bblctl standings --all -o json"},
		{"Show teams with a positive point differential", "bblctl standings --filter 'diff>0'"},
	},
	"players": {
		{"Show the top 10 scorers", "bblctl players --top 10"},
		{"Rank by assists with at least 5 games", "bblctl players --by ast --min-games 5"},
		{"Search players by name", "bblctl players --search <name>"},
	},
	"player": {
		{"Show a player by ID", "bblctl player <id>"},
		{"Show a player's career line", "bblctl player --attrs career.pts,career.ppg <slug>"},
	},
	"teams": {
		{"List all teams", "bblctl teams"},
	},
	"team": {
		{"Show a team's roster", "bblctl team <id>"},
		{"Show a team's season totals", "bblctl team --totals <id>"},
	},
	"match": {
		{"Show a match box score", "bblctl match <id>"},
	},
	"schedule": {
		{"Show upcoming matches", "bblctl schedule --status upcoming"},
		{"Show a team's results", "bblctl schedule --team <id> --status completed"},
	},
	"serve": {
		{"Serve the JSON API on port 8080", "bblctl serve"},
		{"Serve without metrics on another port", "bblctl serve --addr :9090 --no-metrics"},
	},
	"completion": {
		{"Print the bash completion script", "bblctl completion bash"},
	},
}

type usageFlag interface {
	GetUsage() string
}

type visibleFlag interface {
	IsVisible() bool
}

// renderMarkdown documents cmd and its visible flags.
func renderMarkdown(cmd *cli.Command, exs []example) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# bblctl %s\n\n", cmd.Name)
	fmt.Fprintf(&b, "## Short description\n\n%s.\n\n", cmd.Usage)

	usage := cmd.UsageText
	if usage == "" {
		usage = "bblctl " + cmd.Name + " [options]"
	}
	fmt.Fprintf(&b, "## Usage\n\n```\n%s\n```\n\n", usage)

	if len(exs) > 0 {
		b.WriteString("## Quick examples\n\n```\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "# %s\n%s\n", ex.Desc, ex.Cmd)
		}
		b.WriteString("```\n\n")
	}

	var flags []string
	for _, f := range cmd.Flags {
		if v, ok := f.(visibleFlag); ok && !v.IsVisible() {
			continue
		}
		names := make([]string, 0, len(f.Names()))
		for _, n := range f.Names() {
			if len(n) == 1 {
				names = append(names, "-"+n)
			} else {
				names = append(names, "--"+n)
			}
		}
		line := "- `" + strings.Join(names, ", ") + "`"
		if u, ok := f.(usageFlag); ok && u.GetUsage() != "" {
			line += ": " + u.GetUsage()
		}
		flags = append(flags, line)
	}
	if len(flags) > 0 {
		b.WriteString("## Flags\n\n")
		b.WriteString(strings.Join(flags, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	// Header
	b.WriteString("# bblctl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> bblctl " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/bblctl.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`bblctl " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

var placeholderRe = regexp.MustCompile(`<([a-z][a-z-]*)>`)

// sanitizeCommand converts <placeholder> to the tldr {{placeholder}} style
// and compresses runs of whitespace.
func sanitizeCommand(s string) string {
	s = placeholderRe.ReplaceAllString(s, "{{$1}}")
	return strings.Join(strings.Fields(s), " ")
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/bblctl/internal/command"
)

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bblctl player   <id>", "bblctl player {{id}}"},
		{"bblctl standings --filter 'diff>0'", "bblctl standings --filter 'diff>0'"},
		{"bblctl schedule --team <team-id>", "bblctl schedule --team {{team-id}}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeCommand(tt.in))
	}
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("team", "team roster", quickExamples["team"])
	assert.Contains(t, got, "# bblctl-team\n\n> Team roster.\n")
	assert.Contains(t, got, "- Show a team's roster:\n\n`bblctl team {{id}}`\n")

	got = buildTLDR("nothing", "", nil)
	assert.Contains(t, got, "`bblctl nothing --help`")
}

func TestRenderMarkdown(t *testing.T) {
	app, err := command.InitApp(context.Background(), []string{"bblctl"})
	require.NoError(t, err)

	for _, cmd := range app.Commands {
		t.Run(cmd.Name, func(t *testing.T) {
			md := renderMarkdown(cmd, quickExamples[cmd.Name])
			assert.Contains(t, md, "# bblctl "+cmd.Name)
			assert.Contains(t, md, "## Short description")
			assert.NotEmpty(t, quickExamples[cmd.Name])
			assert.NotEmpty(t, md2man.Render([]byte(md)))
		})
	}

	for _, cmd := range app.Commands {
		if cmd.Name == "players" {
			md := renderMarkdown(cmd, nil)
			assert.Contains(t, md, "`--min-games`")
			assert.Contains(t, md, "`--output, -o`: output format")
		}
	}
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")

	require.NoError(t, writeFileIfChanged(path, []byte("one\n"), true))
	info, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, writeFileIfChanged(path, []byte("one"), true))
	again, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())

	require.NoError(t, writeFileIfChanged(path, []byte("two"), true))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}

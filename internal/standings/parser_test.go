// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package standings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/bblctl/internal/sportspress"
)

func table(t *testing.T, data string) sportspress.Table {
	t.Helper()
	return sportspress.Table{ID: 1, Data: json.RawMessage(data)}
}

func loadTables(t *testing.T) []sportspress.Table {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", "tables.json"))
	require.NoError(t, err)
	var tables []sportspress.Table
	require.NoError(t, json.Unmarshal(b, &tables))
	return tables
}

func TestParse_Scenario(t *testing.T) {
	tbl := table(t, `{"11": {
		"pos": 1, "name": "Lakers", "w": "10", "ltwo": "2",
		"pf": "850", "pa": "800", "diff": "50",
		"strk": "<span>W4</span>",
		"form": "<a>W</a><a>W</a><a>L</a><a>W</a><a>W</a>"
	}}`)

	rows := Parse(tbl)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, 1, r.Position)
	assert.Equal(t, "Lakers", r.TeamName)
	assert.Equal(t, 11, r.TeamID)
	assert.Equal(t, 10, r.Wins)
	assert.Equal(t, 2, r.Losses)
	assert.Equal(t, 850, r.PointsFor)
	assert.Equal(t, 800, r.PointsAgainst)
	assert.Equal(t, 50, r.Differential)
	assert.Equal(t, "W4", r.Streak)
	assert.Equal(t, []Result{Win, Win, Loss, Win, Win}, r.Form)
	assert.Nil(t, r.GamesBehind)
	assert.Nil(t, r.HomeRecord)
	assert.Zero(t, r.WinPct)
}

func TestParse_Exclusions(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{name: "zero position", entry: `{"pos": 0, "name": "A", "w": 1, "ltwo": 0}`},
		{name: "string zero position", entry: `{"pos": "0", "name": "A", "w": 1, "ltwo": 0}`},
		{name: "missing position", entry: `{"name": "A", "w": 1, "ltwo": 0}`},
		{name: "header row", entry: `{"pos": "Pos", "name": "Team", "w": "W", "ltwo": "L"}`},
		{name: "missing name", entry: `{"pos": 1, "w": 1, "ltwo": 0}`},
		{name: "empty name", entry: `{"pos": 1, "name": "", "w": 1, "ltwo": 0}`},
		{name: "no games", entry: `{"pos": 1, "name": "A", "w": "0", "ltwo": "0"}`},
		{name: "no record fields", entry: `{"pos": 1, "name": "A"}`},
		{name: "negative position", entry: `{"pos": "-1", "name": "A", "w": 3, "ltwo": 1}`},
		{name: "negative games total", entry: `{"pos": 2, "name": "A", "w": "-3", "ltwo": "1"}`},
		{name: "not an object", entry: `"nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Parse(table(t, `{"7": `+tt.entry+`}`))
			assert.Empty(t, rows)
			assert.NotNil(t, rows)
		})
	}
}

func TestParse_NoData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "absent", data: ``},
		{name: "null", data: `null`},
		{name: "empty array", data: `[]`},
		{name: "string", data: `"x"`},
		{name: "empty object", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Parse(table(t, tt.data))
			assert.NotNil(t, rows)
			assert.Empty(t, rows)
		})
	}
}

func TestParse_Fixture(t *testing.T) {
	tables := loadTables(t)
	rows := Parse(tables[0])
	require.Len(t, rows, 2)

	lakers, heat := rows[0], rows[1]

	assert.Equal(t, "Lakers", lakers.TeamName)
	assert.Equal(t, 1, lakers.Position)
	assert.InDelta(t, 0.833, lakers.WinPct, 1e-9)
	assert.Nil(t, lakers.GamesBehind, "leader gb is a dash")
	require.NotNil(t, lakers.HomeRecord)
	assert.Equal(t, "6-0", *lakers.HomeRecord)
	require.NotNil(t, lakers.Last10)
	assert.Equal(t, "8-2", *lakers.Last10)

	assert.Equal(t, "Heat", heat.TeamName)
	assert.Equal(t, 12, heat.TeamID)
	require.NotNil(t, heat.GamesBehind)
	assert.Equal(t, 1.0, *heat.GamesBehind)
	assert.InDelta(t, 0.75, heat.WinPct, 1e-9)
	assert.Equal(t, "L1", heat.Streak)
	assert.Equal(t, []Result{Win, Loss}, heat.Form)
	require.NotNil(t, heat.AwayRecord)
	assert.Equal(t, "4-2", *heat.AwayRecord)
}

func TestParse_Ordering(t *testing.T) {
	rows := Parse(table(t, `{
		"30": {"pos": "3", "name": "C", "w": 1, "ltwo": 2},
		"10": {"pos": "1", "name": "A", "w": 3, "ltwo": 0},
		"25": {"pos": "2", "name": "B2", "w": 2, "ltwo": 1},
		"20": {"pos": "2", "name": "B1", "w": 2, "ltwo": 1}
	}`))

	require.Len(t, rows, 4)
	var got []string
	for _, r := range rows {
		got = append(got, r.TeamName)
	}
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, got, "ties broken by team id")
}

func TestParse_Idempotent(t *testing.T) {
	tbl := loadTables(t)[0]
	assert.Equal(t, Parse(tbl), Parse(tbl))
}

func TestParse_GamesBehindZeroIsPresent(t *testing.T) {
	rows := Parse(loadTables(t)[2])
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].GamesBehind)
	assert.Equal(t, 0.0, *rows[0].GamesBehind)
	assert.Equal(t, "", rows[0].Streak)
	assert.Equal(t, []Result{}, rows[0].Form)
}

func TestParse_Coercion(t *testing.T) {
	rows := Parse(table(t, `{"5": {
		"pos": " 2 ", "name": " Spurs ", "w": "7.0", "ltwo": 3,
		"pct": "abc", "gb": "", "pf": null, "pa": true, "diff": "-12",
		"home": 4, "road": null
	}}`))

	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, 2, r.Position)
	assert.Equal(t, "Spurs", r.TeamName)
	assert.Equal(t, 7, r.Wins)
	assert.Equal(t, 3, r.Losses)
	assert.Zero(t, r.WinPct)
	assert.Nil(t, r.GamesBehind)
	assert.Zero(t, r.PointsFor)
	assert.Zero(t, r.PointsAgainst)
	assert.Equal(t, -12, r.Differential)
	require.NotNil(t, r.HomeRecord)
	assert.Equal(t, "4", *r.HomeRecord)
	assert.Nil(t, r.AwayRecord)
}

func TestParseAll(t *testing.T) {
	all := ParseAll(loadTables(t))
	require.Len(t, all, 3)
	assert.Len(t, all[0], 2)
	assert.Empty(t, all[1])
	assert.Len(t, all[2], 1)
	assert.Equal(t, "Celtics", all[2][0].TeamName)

	assert.Empty(t, ParseAll(nil))
}

func TestExtractStreak(t *testing.T) {
	tests := []struct {
		fragment string
		want     string
	}{
		{fragment: `<span>W4</span>`, want: "W4"},
		{fragment: `<span style="color:#888888">L12</span>`, want: "L12"},
		{fragment: `<b>W2</b><b>L3</b>`, want: "W2"},
		{fragment: `<span>w4</span>`, want: ""},
		{fragment: `W4`, want: ""},
		{fragment: `<span>-</span>`, want: ""},
		{fragment: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStreak(tt.fragment))
		})
	}
}

func TestExtractForm(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []Result
	}{
		{name: "anchors", fragment: `<a>W</a><a>L</a><a>W</a>`, want: []Result{Win, Loss, Win}},
		{name: "attributes and spacing", fragment: `<div><a href="/e/1" class="sp-form-event-link">L</a> <a href="/e/2">W</a></div>`, want: []Result{Loss, Win}},
		{name: "ignores other tokens", fragment: `<a>D</a><a>W4</a><a>w</a>`, want: []Result{}},
		{name: "empty", fragment: ``, want: []Result{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractForm(tt.fragment))
		})
	}
}

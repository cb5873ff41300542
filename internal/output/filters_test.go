// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/bblctl/internal/attrs"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "single exact match",
			spec: "team=Lakers",
			want: []Filter{{Key: "team", Operand: "=", Target: "Lakers"}},
		},
		{
			name: "negated prefix",
			spec: "name!^Le",
			want: []Filter{{Key: "name", Operand: "^", Target: "Le", Negate: true}},
		},
		{
			name: "greater than",
			spec: "ppg>20",
			want: []Filter{{Key: "ppg", Operand: ">", Target: "20"}},
		},
		{
			name: "regex",
			spec: "name/^Ste.*",
			want: []Filter{{Key: "name", Operand: "/", Target: "^Ste.*"}},
		},
		{
			name: "multiple with invalid skipped",
			spec: "team=Lakers,bogus,pos<4",
			want: []Filter{
				{Key: "team", Operand: "=", Target: "Lakers"},
				{Key: "pos", Operand: "<", Target: "4"},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "team=Lakers|pos<4",
			delimiter: "|",
			want: []Filter{
				{Key: "team", Operand: "=", Target: "Lakers"},
				{Key: "pos", Operand: "<", Target: "4"},
			},
		},
		{
			name: "empty target",
			spec: "name=",
			want: []Filter{{Key: "name", Operand: "="}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv("BBLCTL_FILTER_DELIM", tt.delimiter)
			}

			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		filter Filter
		want   bool
	}{
		{"exact", "Lakers", Filter{Operand: "=", Target: "Lakers"}, true},
		{"exact miss", "Lakers", Filter{Operand: "=", Target: "lakers"}, false},
		{"negated exact", "Lakers", Filter{Operand: "=", Target: "Celtics", Negate: true}, true},
		{"fold", "Lakers", Filter{Operand: "~", Target: "lakers"}, true},
		{"prefix", "Lakers", Filter{Operand: "^", Target: "Lak"}, true},
		{"contains", "Los Angeles Lakers", Filter{Operand: "@", Target: "Angeles"}, true},
		{"greater", "b", Filter{Operand: ">", Target: "a"}, true},
		{"less", "b", Filter{Operand: "<", Target: "a"}, false},
		{"regex", "Lakers", Filter{Operand: "/", Target: "^L.*s$"}, true},
		{"negated regex", "Lakers", Filter{Operand: "/", Target: "^C", Negate: true}, true},
		{"bad regex", "Lakers", Filter{Operand: "/", Target: "["}, false},
		{"unsupported", "Lakers", Filter{Operand: "?", Target: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumberOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		filter Filter
		want   bool
	}{
		{"equal", 12, Filter{Operand: "=", Target: "12"}, true},
		{"equal decimal", 12.5, Filter{Operand: "=", Target: "12.5"}, true},
		{"greater numeric not lexical", 100, Filter{Operand: ">", Target: "20"}, true},
		{"less", 3, Filter{Operand: "<", Target: "4"}, true},
		{"negated greater", 3, Filter{Operand: ">", Target: "4", Negate: true}, true},
		{"prefix falls back to string", 123, Filter{Operand: "^", Target: "12"}, true},
		{"non numeric target", 5, Filter{Operand: "=", Target: "five"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkNumberOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	form := []any{"W", "L", "W"}

	assert.True(t, checkContainsOperand(form, Filter{Operand: "@", Target: "L"}))
	assert.False(t, checkContainsOperand(form, Filter{Operand: "@", Target: "D"}))
	assert.True(t, checkContainsOperand(form, Filter{Operand: "@", Target: "D", Negate: true}))
	assert.True(t, checkContainsOperand(map[string]any{"home": "5-1"}, Filter{Operand: "@", Target: "home"}))
	assert.False(t, checkContainsOperand(42, Filter{Operand: "@", Target: "4"}))
}

func TestFilterDataset(t *testing.T) {
	rows := gjson.Parse(`[
		{"pos": 1, "name": "Lakers", "w": 10, "form": ["W","W"], "home": "5-0"},
		{"pos": 2, "name": "Celtics", "w": 8, "form": ["W","L"], "home": null},
		{"pos": 3, "name": "Bulls", "w": 2, "form": ["L","L"]}
	]`)

	var list attrs.AttrList
	require.NoError(t, list.Set("pos,name:team,w,form,!home"))

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", []string{"Lakers", "Celtics", "Bulls"}},
		{"by output key", "team=Celtics", []string{"Celtics"}},
		{"by json key", "name^B", []string{"Bulls"}},
		{"numeric", "w>5", []string{"Lakers", "Celtics"}},
		{"contains", "form@L", []string{"Celtics", "Bulls"}},
		{"excluded attr still filters", "home=5-0", []string{"Lakers"}},
		{"unknown key ignored", "nope=1,w<5", []string{"Bulls"}},
		{"all filters must match", "w>5,form@L", []string{"Celtics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(rows, list, tt.spec)
			names := make([]string, 0, len(got))
			for _, row := range got {
				names = append(names, row["team"].(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

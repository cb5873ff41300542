// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package standings

import (
	"regexp"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/staranto/bblctl/internal/sportspress"
)

// Result is the outcome of one game in a team's form.
type Result string

const (
	Win  Result = "W"
	Loss Result = "L"
)

// Row is one team's line in the standings.
type Row struct {
	Position      int      `json:"position"`
	TeamName      string   `json:"teamName"`
	TeamID        int      `json:"teamId"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	WinPct        float64  `json:"winPct"`
	GamesBehind   *float64 `json:"gamesBehind,omitempty"`
	PointsFor     int      `json:"pointsFor"`
	PointsAgainst int      `json:"pointsAgainst"`
	Differential  int      `json:"differential"`
	HomeRecord    *string  `json:"homeRecord,omitempty"`
	AwayRecord    *string  `json:"awayRecord,omitempty"`
	Last10        *string  `json:"last10,omitempty"`
	Streak        string   `json:"streak"`
	Form          []Result `json:"form"`
}

var (
	streakRe = regexp.MustCompile(`>([WL]\d+)<`)
	formRe   = regexp.MustCompile(`>(W|L)<`)
)

// ExtractStreak returns the first W/L run token, e.g. "W4", found as the
// inner text of an element in fragment. It returns "" if there is none.
func ExtractStreak(fragment string) string {
	m := streakRe.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractForm returns the single letter W/L inner texts of fragment in
// document order.
func ExtractForm(fragment string) []Result {
	matches := formRe.FindAllStringSubmatch(fragment, -1)
	form := make([]Result, 0, len(matches))
	for _, m := range matches {
		form = append(form, Result(m[1]))
	}
	return form
}

// Parse converts a league table into rows sorted by position. A table with no
// data object yields an empty slice.
func Parse(table sportspress.Table) []Row {
	rows := []Row{}

	data := gjson.ParseBytes(table.Data)
	if !data.IsObject() {
		return rows
	}

	data.ForEach(func(key, value gjson.Result) bool {
		rec := NewRawRecord(key.String(), value)
		if rec.Valid() {
			rows = append(rows, rec.Row())
		}
		return true
	})

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	return rows
}

// ParseAll parses each table independently, preserving order.
func ParseAll(tables []sportspress.Table) [][]Row {
	all := make([][]Row, 0, len(tables))
	for _, t := range tables {
		all = append(all, Parse(t))
	}
	return all
}

// Row converts the record into a standings row.
func (r RawRecord) Row() Row {
	return Row{
		Position:      r.Position,
		TeamName:      r.Name,
		TeamID:        r.TeamID,
		Wins:          r.Wins,
		Losses:        r.Losses,
		WinPct:        r.WinPct,
		GamesBehind:   r.GamesBehind,
		PointsFor:     r.PointsFor,
		PointsAgainst: r.PointsAgainst,
		Differential:  r.Differential,
		HomeRecord:    r.Home,
		AwayRecord:    r.Away,
		Last10:        r.Last10,
		Streak:        ExtractStreak(r.Streak),
		Form:          ExtractForm(r.Form),
	}
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package leaderboard builds per-player season rows and team aggregates from
// player statistics.
package leaderboard

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/staranto/bblctl/internal/sportspress"
	"github.com/staranto/bblctl/internal/stats"
)

// Row is one player's line on the leaderboard. Assists, steals and blocks are
// season totals rebuilt from per-game averages.
type Row struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Number      string  `json:"number"`
	TeamID      int     `json:"team"`
	Photo       string  `json:"photo,omitempty"`
	Points      int     `json:"pts"`
	Assists     int     `json:"ast"`
	Steals      int     `json:"stl"`
	Blocks      int     `json:"blk"`
	ThreesMade  int     `json:"3pm"`
	GamesPlayed int     `json:"g"`
	PPG         float64 `json:"ppg"`
	APG         float64 `json:"apg"`
	RPG         float64 `json:"rpg"`
	PER         float64 `json:"per"`
}

// Columns accepted by Sort.
const (
	ColName   = "name"
	ColPoints = "pts"
	ColAst    = "ast"
	ColStl    = "stl"
	ColBlk    = "blk"
	Col3PM    = "3pm"
	ColGames  = "g"
)

// Columns lists the sortable columns.
var Columns = []string{ColName, ColPoints, ColAst, ColStl, ColBlk, Col3PM, ColGames}

const unknownPlayer = "Unknown Player"

// FromPlayers returns a row for every player with at least one game in the
// league and season.
func FromPlayers(players []sportspress.Player, league, season int) []Row {
	rows := make([]Row, 0, len(players))
	for _, p := range players {
		s, ok := p.SeasonStats(league, season)
		if !ok || s.Games.Int() == 0 {
			continue
		}
		rows = append(rows, newRow(p, s))
	}
	return rows
}

func newRow(p sportspress.Player, s sportspress.PlayerStats) Row {
	g := s.Games.Float()

	name := p.Name()
	if name == "" {
		name = unknownPlayer
	}
	number := p.Number.String()
	if number == "" {
		number = "-"
	}
	team := 0
	if len(p.CurrentTeams) > 0 {
		team = p.CurrentTeams[0]
	}
	threes := 0
	if s.TPM != nil {
		threes = s.TPM.Int()
	}

	return Row{
		ID:          p.ID,
		Name:        name,
		Slug:        p.Slug,
		Number:      number,
		TeamID:      team,
		Photo:       p.PhotoURL(),
		Points:      s.Points.Int(),
		Assists:     total(s.APG, g),
		Steals:      total(s.SPG, g),
		Blocks:      total(s.BPG, g),
		ThreesMade:  threes,
		GamesPlayed: s.Games.Int(),
		PPG:         s.PPG.Float(),
		APG:         s.APG.Float(),
		RPG:         s.RPG.Float(),
		PER:         stats.PER(s),
	}
}

func total(perGame sportspress.Number, games float64) int {
	return int(math.Round(perGame.Float() * games))
}

// Filter keeps rows whose name contains search, ignoring case, and that have
// played at least minGames.
func Filter(rows []Row, search string, minGames int) []Row {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if !stats.MeetsMinimumGames(r.GamesPlayed, minGames) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort orders rows in place by column. Names compare case-insensitively.
func Sort(rows []Row, column string, desc bool) error {
	var less func(a, b Row) bool
	switch column {
	case ColName:
		less = func(a, b Row) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case ColPoints:
		less = func(a, b Row) bool { return a.Points < b.Points }
	case ColAst:
		less = func(a, b Row) bool { return a.Assists < b.Assists }
	case ColStl:
		less = func(a, b Row) bool { return a.Steals < b.Steals }
	case ColBlk:
		less = func(a, b Row) bool { return a.Blocks < b.Blocks }
	case Col3PM:
		less = func(a, b Row) bool { return a.ThreesMade < b.ThreesMade }
	case ColGames:
		less = func(a, b Row) bool { return a.GamesPlayed < b.GamesPlayed }
	default:
		return fmt.Errorf("unknown sort column %q, must be one of %v", column, Columns)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
	return nil
}

// DefaultOrder reports whether column sorts descending by default. Stats
// read best-first, names alphabetically.
func DefaultOrder(column string) (desc bool) {
	return column != ColName
}

// Totals aggregates a roster's season numbers.
type Totals struct {
	TotalPoints      int     `json:"totalPoints"`
	TotalAssists     int     `json:"totalAssists"`
	TotalRebounds    int     `json:"totalRebounds"`
	AvgPointsPerGame float64 `json:"avgPointsPerGame"`
	PlayerCount      int     `json:"playerCount"`
}

// TeamTotals sums the roster's league/season statistics. Players without a
// line for the season count toward PlayerCount only.
func TeamTotals(roster []sportspress.Player, league, season int) Totals {
	var t Totals
	var games float64
	for _, p := range roster {
		s, ok := p.SeasonStats(league, season)
		if !ok {
			continue
		}
		g := s.Games.Float()
		t.TotalPoints += s.Points.Int()
		t.TotalAssists += total(s.APG, g)
		t.TotalRebounds += total(s.RPG, g)
		games += g
	}
	if games > 0 {
		t.AvgPointsPerGame = float64(t.TotalPoints) / games
	}
	t.PlayerCount = len(roster)
	return t
}

// ByPoints returns a copy of roster ordered by season points, highest first.
func ByPoints(roster []sportspress.Player, league, season int) []sportspress.Player {
	return stats.SortByStat(roster, func(p sportspress.Player) float64 {
		s, _ := p.SeasonStats(league, season)
		return s.Points.Float()
	}, false)
}

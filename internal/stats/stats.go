// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package stats computes derived basketball statistics. Results are raw
// numbers; turning them into display strings is the format package's job.
package stats

import (
	"math"
	"sort"

	"github.com/staranto/bblctl/internal/sportspress"
)

// DefaultTopN is the TopN limit used when none is given.
const DefaultTopN = 10

// WinPct returns wins / (wins + losses), or 0 for a team with no games.
func WinPct(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

// GamesBehind returns how far a team trails the leader.
func GamesBehind(leaderWins, leaderLosses, teamWins, teamLosses int) float64 {
	return float64((leaderWins-teamWins)+(teamLosses-leaderLosses)) / 2
}

// shootingPct is made/attempted. Missing inputs or zero attempts are not
// defined, so "did not attempt" stays distinct from 0%.
func shootingPct(made, attempted *float64) (float64, bool) {
	if made == nil || attempted == nil || *attempted == 0 {
		return 0, false
	}
	return *made / *attempted, true
}

// FieldGoalPct returns FGM / FGA.
func FieldGoalPct(fgm, fga *float64) (float64, bool) {
	return shootingPct(fgm, fga)
}

// ThreePointPct returns 3PM / 3PA.
func ThreePointPct(tpm, tpa *float64) (float64, bool) {
	return shootingPct(tpm, tpa)
}

// FreeThrowPct returns FTM / FTA.
func FreeThrowPct(ftm, fta *float64) (float64, bool) {
	return shootingPct(ftm, fta)
}

// TrueShootingPct returns PTS / (2 * (FGA + 0.44 * FTA)).
func TrueShootingPct(pts, fga, fta float64) (float64, bool) {
	d := 2 * (fga + 0.44*fta)
	if d == 0 {
		return 0, false
	}
	return pts / d, true
}

// EffectiveFGPct returns (FGM + 0.5 * 3PM) / FGA.
func EffectiveFGPct(fgm, tpm, fga float64) (float64, bool) {
	if fga == 0 {
		return 0, false
	}
	return (fgm + 0.5*tpm) / fga, true
}

// PER is a simplified efficiency rating: positive plays minus misses and
// turnovers, floored at 0. Missing box score fields count as 0.
func PER(s sportspress.PlayerStats) float64 {
	fgm, fga := value(s.FGM), value(s.FGA)
	ftm, fta := value(s.FTM), value(s.FTA)

	positive := s.Points.Float() + s.APG.Float() + s.RPG.Float() +
		s.SPG.Float() + s.BPG.Float() + fgm + ftm
	negative := value(s.TOV) + (fga - fgm) + (fta - ftm)

	return math.Max(0, positive-negative)
}

// Float converts an optional API number for the percentage helpers.
func Float(n *sportspress.Number) *float64 {
	if n == nil {
		return nil
	}
	f := n.Float()
	return &f
}

func value(n *sportspress.Number) float64 {
	if n == nil {
		return 0
	}
	return n.Float()
}

// Average returns the mean of values, or 0 if there are none.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeetsMinimumGames reports whether played reaches minGames.
func MeetsMinimumGames(played, minGames int) bool {
	return played >= minGames
}

// RecentForm returns the last limit results.
func RecentForm[T any](results []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}
	if len(results) <= limit {
		return append([]T{}, results...)
	}
	return append([]T{}, results[len(results)-limit:]...)
}

// SortByStat returns a copy of items ordered by stat, descending unless asc is
// set. Equal values keep their input order.
func SortByStat[T any](items []T, stat func(T) float64, asc bool) []T {
	out := append([]T{}, items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := stat(out[i]), stat(out[j])
		if asc {
			return a < b
		}
		return a > b
	})
	return out
}

// TopN returns the n items with the highest stat. n <= 0 means DefaultTopN.
func TopN[T any](items []T, stat func(T) float64, n int) []T {
	if n <= 0 {
		n = DefaultTopN
	}
	out := SortByStat(items, stat, false)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

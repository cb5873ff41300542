// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package leaderboard

import (
	"strconv"

	"github.com/staranto/bblctl/internal/sportspress"
)

// Career sums a player's seasons in one league. Season keys "0" and "-1" are
// the header and total lines SportsPress adds, and are skipped.
type Career struct {
	Seasons    int     `json:"seasons"`
	Games      int     `json:"g"`
	Points     int     `json:"pts"`
	Assists    int     `json:"ast"`
	Rebounds   int     `json:"reb"`
	Steals     int     `json:"stl"`
	Blocks     int     `json:"blk"`
	ThreesMade int     `json:"3pm"`
	PPG        float64 `json:"ppg"`
	APG        float64 `json:"apg"`
	RPG        float64 `json:"rpg"`
	SPG        float64 `json:"spg"`
	BPG        float64 `json:"bpg"`
}

// CareerTotals returns the league career line for p, and false when p has no
// games in the league.
func CareerTotals(p sportspress.Player, league int) (Career, bool) {
	var c Career
	for key, s := range p.Statistics[strconv.Itoa(league)] {
		if key == "0" || key == "-1" {
			continue
		}
		g := s.Games.Float()
		if g == 0 {
			continue
		}

		c.Seasons++
		c.Games += s.Games.Int()
		c.Points += s.Points.Int()
		c.Assists += total(s.APG, g)
		c.Rebounds += total(s.RPG, g)
		c.Steals += total(s.SPG, g)
		c.Blocks += total(s.BPG, g)
		if s.TPM != nil {
			c.ThreesMade += s.TPM.Int()
		}
	}

	if c.Games == 0 {
		return Career{}, false
	}

	games := float64(c.Games)
	c.PPG = float64(c.Points) / games
	c.APG = float64(c.Assists) / games
	c.RPG = float64(c.Rebounds) / games
	c.SPG = float64(c.Steals) / games
	c.BPG = float64(c.Blocks) / games
	return c, true
}

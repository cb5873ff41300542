// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/bblctl/internal/format"
	"github.com/staranto/bblctl/internal/leaderboard"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/sportspress"
	"github.com/staranto/bblctl/internal/stats"
)

// PlayerDetail is a player's profile with their season line and league
// career. Percentages are ratios and are nil when there were no attempts.
type PlayerDetail struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Number      string             `json:"number"`
	Position    string             `json:"position"`
	TeamName    string             `json:"team"`
	Height      string             `json:"height"`
	Weight      string             `json:"weight"`
	DateOfBirth string             `json:"dob"`
	Nationality string             `json:"nationality"`
	Games       int                `json:"g"`
	Points      int                `json:"pts"`
	PPG         float64            `json:"ppg"`
	APG         float64            `json:"apg"`
	RPG         float64            `json:"rpg"`
	SPG         float64            `json:"spg"`
	BPG         float64            `json:"bpg"`
	FGPct       *float64           `json:"fgPct"`
	TPPct       *float64           `json:"tpPct"`
	FTPct       *float64           `json:"ftPct"`
	EFGPct      *float64           `json:"efgPct"`
	PER         float64            `json:"per"`
	Career      leaderboard.Career `json:"career"`
}

func ratio(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

func newPlayerDetail(p sportspress.Player, teamName string, league, season int) PlayerDetail {
	d := PlayerDetail{
		ID:          p.ID,
		Name:        p.Name(),
		Slug:        p.Slug,
		Number:      p.Number.String(),
		Position:    p.Position.String(),
		TeamName:    teamName,
		Height:      format.Height(p.Metrics.Height.String()),
		Weight:      format.Weight(p.Metrics.Weight.String()),
		DateOfBirth: format.Date(p.DateOfBirth),
		Nationality: strings.ToUpper(strings.Join(p.Nationalities, " ")),
	}

	if s, ok := p.SeasonStats(league, season); ok {
		d.Games = s.Games.Int()
		d.Points = s.Points.Int()
		d.PPG = s.PPG.Float()
		d.APG = s.APG.Float()
		d.RPG = s.RPG.Float()
		d.SPG = s.SPG.Float()
		d.BPG = s.BPG.Float()
		d.FGPct = ratio(stats.FieldGoalPct(stats.Float(s.FGM), stats.Float(s.FGA)))
		d.TPPct = ratio(stats.ThreePointPct(stats.Float(s.TPM), stats.Float(s.TPA)))
		d.FTPct = ratio(stats.FreeThrowPct(stats.Float(s.FTM), stats.Float(s.FTA)))
		if s.FGA != nil && s.FGM != nil {
			tpm := 0.0
			if s.TPM != nil {
				tpm = s.TPM.Float()
			}
			d.EFGPct = ratio(stats.EffectiveFGPct(s.FGM.Float(), tpm, s.FGA.Float()))
		}
		d.PER = stats.PER(s)
	}

	d.Career, _ = leaderboard.CareerTotals(p, league)
	return d
}

// lookupPlayer resolves arg as a numeric ID, or as a slug otherwise.
func lookupPlayer(ctx context.Context, ld *loader.Loader, arg string) (sportspress.Player, error) {
	if _, err := strconv.Atoi(arg); err == nil {
		id, err := ParseID(arg)
		if err != nil {
			return sportspress.Player{}, err
		}
		return ld.Player(ctx, id)
	}
	return ld.PlayerBySlug(ctx, arg)
}

func playerFetch(ctx context.Context, cmd *cli.Command) ([]PlayerDetail, error) {
	arg, err := requireArg(cmd, "player")
	if err != nil {
		return nil, err
	}
	ld := NewLoader(cmd)

	var (
		p     sportspress.Player
		teams []sportspress.Team
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		p, err = lookupPlayer(ctx, ld, arg)
		return err
	})
	g.Go(func() (err error) {
		teams, err = ld.Teams(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teamName := ""
	if len(p.CurrentTeams) > 0 {
		for _, t := range teams {
			if t.ID == p.CurrentTeams[0] {
				teamName = t.Name()
				break
			}
		}
	}

	return []PlayerDetail{newPlayerDetail(p, teamName, ld.League(), ld.Season())}, nil
}

// PlayerCommandAction shows one player.
func PlayerCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[PlayerDetail]{
		CommandName: "player",
		SchemaType:  reflect.TypeOf(PlayerDetail{}),
		DefaultAttrs: []string{
			"name", "number:#", "position:pos", "team", "g", "ppg", "apg", "rpg",
			"fgPct:fg%:p", "tpPct:3p%:p", "ftPct:ft%:p", "per",
		},
		FetchFn: playerFetch,
	}
	return runner.Run(ctx, cmd)
}

// PlayerCommandBuilder constructs the cli.Command for "player".
func PlayerCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "player",
		Usage:     "player profile",
		UsageText: "bblctl player [options] <id|slug>",
		ArgsUsage: "<id|slug>",
		Action:    PlayerCommandAction,
		Meta:      meta,
	}).Build()
}

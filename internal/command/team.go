// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/leaderboard"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/meta"
)

// RosterRow is one player on a team's roster.
type RosterRow struct {
	TeamName string `json:"teamName"`
	leaderboard.Row
}

// TotalsRow is a team's season aggregate.
type TotalsRow struct {
	ID   int    `json:"id"`
	Team string `json:"team"`
	leaderboard.Totals
}

func loadTeamView(ctx context.Context, cmd *cli.Command) (*loader.Loader, loader.TeamView, error) {
	arg, err := requireArg(cmd, "team")
	if err != nil {
		return nil, loader.TeamView{}, err
	}
	id, err := ParseID(arg)
	if err != nil {
		return nil, loader.TeamView{}, err
	}

	ld := NewLoader(cmd)
	view, err := ld.Team(ctx, id)
	if err != nil {
		return nil, loader.TeamView{}, err
	}
	log.Debugf("team %d: %d players", id, len(view.Roster))
	return ld, view, nil
}

func rosterFetch(ctx context.Context, cmd *cli.Command) ([]RosterRow, error) {
	ld, view, err := loadTeamView(ctx, cmd)
	if err != nil {
		return nil, err
	}

	roster := leaderboard.ByPoints(view.Roster, ld.League(), ld.Season())
	lines := leaderboard.FromPlayers(roster, ld.League(), ld.Season())
	rows := make([]RosterRow, 0, len(lines))
	for _, r := range lines {
		rows = append(rows, RosterRow{TeamName: view.Team.Name(), Row: r})
	}
	return rows, nil
}

func totalsFetch(ctx context.Context, cmd *cli.Command) ([]TotalsRow, error) {
	ld, view, err := loadTeamView(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return []TotalsRow{{
		ID:     view.Team.ID,
		Team:   view.Team.Name(),
		Totals: leaderboard.TeamTotals(view.Roster, ld.League(), ld.Season()),
	}}, nil
}

// TeamCommandAction shows a team's roster, or its season totals with
// --totals.
func TeamCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("totals") {
		runner := &QueryActionRunner[TotalsRow]{
			CommandName: "team",
			SchemaType:  reflect.TypeOf(TotalsRow{}),
			DefaultAttrs: []string{
				"team", "playerCount:players", "totalPoints:pts", "totalAssists:ast",
				"totalRebounds:reb", "avgPointsPerGame:ppg",
			},
			FetchFn: totalsFetch,
		}
		return runner.Run(ctx, cmd)
	}

	runner := &QueryActionRunner[RosterRow]{
		CommandName:  "team",
		SchemaType:   reflect.TypeOf(RosterRow{}),
		DefaultAttrs: []string{"number:#", "name", "g", "pts", "ppg", "apg", "rpg"},
		FetchFn:      rosterFetch,
	}
	return runner.Run(ctx, cmd)
}

// TeamCommandBuilder constructs the cli.Command for "team".
func TeamCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "team",
		Usage:     "team roster",
		UsageText: "bblctl team [options] <id>",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "totals",
				Usage:       "show season totals instead of the roster",
				HideDefault: true,
			},
		},
		Action: TeamCommandAction,
		Meta:   meta,
	}).Build()
}

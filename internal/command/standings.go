// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/format"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/sportspress"
	"github.com/staranto/bblctl/internal/standings"
)

// StandingsRow is a standings.Row with its table and display columns.
type StandingsRow struct {
	Table string `json:"table"`
	standings.Row
	Record string `json:"record"`
	Pct    string `json:"pct"`
	Rank   string `json:"rank"`
}

func newStandingsRows(table string, rows []standings.Row) []StandingsRow {
	out := make([]StandingsRow, 0, len(rows))
	for _, r := range rows {
		r.Streak = format.Streak(r.Streak)
		out = append(out, StandingsRow{
			Table:  table,
			Row:    r,
			Record: format.Record(r.Wins, r.Losses),
			Pct:    format.WinPercentage(r.Wins, r.Losses),
			Rank:   format.Ordinal(r.Position),
		})
	}
	return out
}

func standingsFetch(ctx context.Context, cmd *cli.Command) ([]StandingsRow, error) {
	ld := NewLoader(cmd)

	if !cmd.Bool("all") {
		view, err := ld.Standings(ctx)
		if err != nil {
			return nil, err
		}
		return newStandingsRows(view.Title, view.Rows), nil
	}

	views, err := ld.AllStandings(ctx, sportspress.TablesParams{
		League: ld.League(),
		Season: ld.Season(),
	})
	if err != nil {
		return nil, err
	}
	var out []StandingsRow
	for _, v := range views {
		out = append(out, newStandingsRows(v.Title, v.Rows)...)
	}
	return out, nil
}

// StandingsCommandAction lists the league table.
func StandingsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[StandingsRow]{
		CommandName:  "standings",
		SchemaType:   reflect.TypeOf(StandingsRow{}),
		DefaultAttrs: []string{"position:pos", "teamName:team", "wins:w", "losses:l", "pct", "gamesBehind:gb", "differential:diff", "streak"},
		FetchFn:      standingsFetch,
	}
	return runner.Run(ctx, cmd)
}

// StandingsCommandBuilder constructs the cli.Command for "standings".
func StandingsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "standings",
		Usage:     "league table",
		UsageText: "bblctl standings [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "list every table for the league and season",
				HideDefault: true,
			},
		},
		Action: StandingsCommandAction,
		Meta:   meta,
	}).Build()
}

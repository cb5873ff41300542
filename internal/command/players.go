// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/bblctl/internal/leaderboard"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/sportspress"
)

// PlayerRow is a leaderboard row with its team's name.
type PlayerRow struct {
	leaderboard.Row
	TeamName string `json:"teamName"`
}

// Sort orders accepted by --order.
const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

func playersFetch(ctx context.Context, cmd *cli.Command) ([]PlayerRow, error) {
	ld := NewLoader(cmd)

	var (
		players []sportspress.Player
		teams   []sportspress.Team
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		players, err = ld.Players(ctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = ld.Teams(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name()
	}

	rows := leaderboard.FromPlayers(players, ld.League(), ld.Season())
	rows = leaderboard.Filter(rows, cmd.String("search"), cmd.Int("min-games"))

	by := cmd.String("by")
	desc := leaderboard.DefaultOrder(by)
	switch cmd.String("order") {
	case orderAsc:
		desc = false
	case orderDesc:
		desc = true
	}
	if err := leaderboard.Sort(rows, by, desc); err != nil {
		return nil, err
	}

	if top := cmd.Int("top"); top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	out := make([]PlayerRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, PlayerRow{Row: r, TeamName: names[r.TeamID]})
	}
	return out, nil
}

// PlayersCommandAction lists the season leaderboard.
func PlayersCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[PlayerRow]{
		CommandName:  "players",
		SchemaType:   reflect.TypeOf(PlayerRow{}),
		DefaultAttrs: []string{"id", "name", "teamName:team", "g", "pts", "ppg::f1", "apg::f1", "rpg::f1", "per::f1"},
		FetchFn:      playersFetch,
	}
	return runner.Run(ctx, cmd)
}

// PlayersCommandBuilder constructs the cli.Command for "players".
func PlayersCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "players",
		Usage:     "season leaderboard",
		UsageText: "bblctl players [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"q"},
				Usage:   "only players whose name contains this text",
			},
			&cli.IntFlag{
				Name:    "min-games",
				Usage:   "only players with at least this many games",
				Sources: configSources("players", "min-games"),
			},
			&cli.StringFlag{
				Name:    "by",
				Usage:   fmt.Sprintf("leaderboard column, one of %v", leaderboard.Columns),
				Value:   leaderboard.ColPoints,
				Sources: configSources("players", "by"),
				Validator: func(s string) error {
					if !slices.Contains(leaderboard.Columns, s) {
						return fmt.Errorf("invalid column %q, must be one of %v", s, leaderboard.Columns)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "asc or desc, defaults to desc for stats and asc for names",
				Validator: func(s string) error {
					if s != orderAsc && s != orderDesc {
						return fmt.Errorf("invalid order %q, must be %s or %s", s, orderAsc, orderDesc)
					}
					return nil
				},
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "limit rows returned, 0 for all",
				Sources: configSources("players", "top"),
			},
		},
		Action: PlayersCommandAction,
		Meta:   meta,
	}).Build()
}

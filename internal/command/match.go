// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/format"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/meta"
)

// MatchRow is one team's line in a match box score.
type MatchRow struct {
	MatchID  int    `json:"matchId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"venue"`
	Status   string `json:"status"`
	TeamID   int    `json:"teamId"`
	TeamName string `json:"team"`
	Q1       int    `json:"q1"`
	Q2       int    `json:"q2"`
	Q3       int    `json:"q3"`
	Q4       int    `json:"q4"`
	OT       int    `json:"ot"`
	Points   int    `json:"pts"`
}

func newMatchRows(v loader.MatchView) []MatchRow {
	m := v.Match
	rows := make([]MatchRow, 0, len(v.Teams))
	for _, t := range v.Teams {
		r := MatchRow{
			MatchID:  m.ID,
			Date:     m.Date,
			Time:     format.Time(m.Time),
			Venue:    m.Venue.String(),
			Status:   m.Status,
			TeamID:   t.ID,
			TeamName: t.Name(),
		}
		if res, ok := m.Result(t.ID); ok {
			q := res.Quarters()
			r.Q1, r.Q2, r.Q3, r.Q4, r.OT = q[0], q[1], q[2], q[3], q[4]
			r.Points = res.Points.Int()
		}
		rows = append(rows, r)
	}
	return rows
}

func matchFetch(ctx context.Context, cmd *cli.Command) ([]MatchRow, error) {
	arg, err := requireArg(cmd, "match")
	if err != nil {
		return nil, err
	}
	id, err := ParseID(arg)
	if err != nil {
		return nil, err
	}

	view, err := NewLoader(cmd).Match(ctx, id)
	if err != nil {
		return nil, err
	}
	return newMatchRows(view), nil
}

// MatchCommandAction shows a match box score, one row per team.
func MatchCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[MatchRow]{
		CommandName:  "match",
		SchemaType:   reflect.TypeOf(MatchRow{}),
		DefaultAttrs: []string{"date::d", "team", "q1", "q2", "q3", "q4", "ot", "pts"},
		FetchFn:      matchFetch,
	}
	return runner.Run(ctx, cmd)
}

// MatchCommandBuilder constructs the cli.Command for "match".
func MatchCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "match",
		Usage:     "match box score",
		UsageText: "bblctl match [options] <id>",
		ArgsUsage: "<id>",
		Action:    MatchCommandAction,
		Meta:      meta,
	}).Build()
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/format"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/sportspress"
)

// ScheduleRow is one match in the season schedule.
type ScheduleRow struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	When      string `json:"when"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	Score     string `json:"score"`
	Venue     string `json:"venue"`
}

// now is swapped in tests.
var now = time.Now

func newScheduleRow(s loader.Schedule, e sportspress.Event, at time.Time) ScheduleRow {
	r := ScheduleRow{
		ID:     e.ID,
		Date:   e.Date,
		Time:   format.Time(e.Time),
		Status: e.Status,
		Venue:  e.Venue.String(),
	}
	if t, err := format.ParseDate(e.Date); err == nil {
		r.When = format.RelativeTime(t, at)
	}

	// The first listed team is at home.
	if len(e.Teams) > 0 {
		r.Home = s.TeamName(e.Teams[0])
	}
	if len(e.Teams) > 1 {
		r.Away = s.TeamName(e.Teams[1])
	}

	if e.Completed() && len(e.Teams) > 1 {
		home, hok := e.Result(e.Teams[0])
		away, aok := e.Result(e.Teams[1])
		if hok && aok {
			h, a := home.Points.Int(), away.Points.Int()
			r.HomeScore, r.AwayScore = &h, &a
			r.Score = fmt.Sprintf("%d-%d", h, a)
		}
	}
	return r
}

func scheduleFetch(ctx context.Context, cmd *cli.Command) ([]ScheduleRow, error) {
	s, err := NewLoader(cmd).Schedule(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := s.Filter(cmd.Int("team"), cmd.String("status"))
	if err != nil {
		return nil, err
	}

	at := now()
	rows := make([]ScheduleRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, newScheduleRow(s, m, at))
	}
	return rows, nil
}

// ScheduleCommandAction lists the season's matches.
func ScheduleCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[ScheduleRow]{
		CommandName:  "schedule",
		SchemaType:   reflect.TypeOf(ScheduleRow{}),
		DefaultAttrs: []string{"id", "date::d", "when", "home", "away", "score"},
		FetchFn:      scheduleFetch,
	}
	return runner.Run(ctx, cmd)
}

// ScheduleCommandBuilder constructs the cli.Command for "schedule".
func ScheduleCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "schedule",
		Usage:     "season schedule",
		UsageText: "bblctl schedule [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "team",
				Usage:   "only matches involving this team ID",
				Sources: configSources("schedule", "team"),
			},
			&cli.StringFlag{
				Name:    "status",
				Usage:   fmt.Sprintf("one of %v", loader.Statuses),
				Value:   loader.StatusAll,
				Sources: configSources("schedule", "status"),
				Validator: func(s string) error {
					if !slices.Contains(loader.Statuses, s) {
						return fmt.Errorf("invalid status %q, must be one of %v", s, loader.Statuses)
					}
					return nil
				},
			},
		},
		Action: ScheduleCommandAction,
		Meta:   meta,
	}).Build()
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/sportspress"
)

// TeamRow is one team in the team list.
type TeamRow struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Abbreviation string `json:"abbr"`
	Venue        string `json:"venue"`
	Logo         string `json:"logo"`
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary"`
}

func newTeamRow(t sportspress.Team) TeamRow {
	r := TeamRow{
		ID:           t.ID,
		Name:         t.Name(),
		Slug:         t.Slug,
		Abbreviation: t.Abbreviation.String(),
		Venue:        t.Venue.String(),
		Logo:         t.LogoURL(),
	}
	if t.Colors != nil {
		r.Primary = t.Colors.Primary
		r.Secondary = t.Colors.Secondary
	}
	return r
}

func teamsFetch(ctx context.Context, cmd *cli.Command) ([]TeamRow, error) {
	teams, err := NewLoader(cmd).Teams(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]TeamRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, newTeamRow(t))
	}
	return rows, nil
}

// TeamsCommandAction lists every team.
func TeamsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[TeamRow]{
		CommandName:  "teams",
		SchemaType:   reflect.TypeOf(TeamRow{}),
		DefaultAttrs: []string{"id", "name", "abbr", "venue"},
		FetchFn:      teamsFetch,
	}
	return runner.Run(ctx, cmd)
}

// TeamsCommandBuilder constructs the cli.Command for "teams".
func TeamsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "teams",
		Usage:     "team list",
		UsageText: "bblctl teams [options]",
		Action:    TeamsCommandAction,
		Meta:      meta,
	}).Build()
}

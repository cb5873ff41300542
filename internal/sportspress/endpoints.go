// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sportspress

import (
	"context"
	"fmt"
)

// EventsParams filters /events. Zero values are omitted from the query.
type EventsParams struct {
	League  int    `url:"league,omitempty"`
	Season  int    `url:"season,omitempty"`
	Team    int    `url:"team,omitempty"`
	Status  string `url:"status,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
	Page    int    `url:"page,omitempty"`
	Order   string `url:"order,omitempty"`
	OrderBy string `url:"orderby,omitempty"`
}

// PlayersParams filters /players.
type PlayersParams struct {
	League  int    `url:"league,omitempty"`
	Season  int    `url:"season,omitempty"`
	Team    int    `url:"team,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
	Page    int    `url:"page,omitempty"`
	Search  string `url:"search,omitempty"`
	Slug    string `url:"slug,omitempty"`
	Embed   bool   `url:"_embed,omitempty"`
}

// TeamsParams filters /teams.
type TeamsParams struct {
	League  int    `url:"league,omitempty"`
	Season  int    `url:"season,omitempty"`
	PerPage int    `url:"per_page,omitempty"`
	Page    int    `url:"page,omitempty"`
	Slug    string `url:"slug,omitempty"`
	Embed   bool   `url:"_embed,omitempty"`
}

// TablesParams filters /tables.
type TablesParams struct {
	League  int `url:"league,omitempty"`
	Season  int `url:"season,omitempty"`
	PerPage int `url:"per_page,omitempty"`
	Page    int `url:"page,omitempty"`
}

type embedParams struct {
	Embed bool `url:"_embed,omitempty"`
}

// Events lists events (matches).
func (c *Client) Events(ctx context.Context, params EventsParams) ([]Event, error) {
	var events []Event
	if err := c.get(ctx, "/events", params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Event returns a single event.
func (c *Client) Event(ctx context.Context, id int) (Event, error) {
	var event Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d", id), nil, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// UpcomingEvents lists scheduled events, soonest first.
func (c *Client) UpcomingEvents(ctx context.Context, params EventsParams) ([]Event, error) {
	params.Status = "scheduled"
	params.OrderBy = "date"
	params.Order = "asc"
	return c.Events(ctx, params)
}

// CompletedEvents lists played events, most recent first.
func (c *Client) CompletedEvents(ctx context.Context, params EventsParams) ([]Event, error) {
	params.Status = "completed"
	params.OrderBy = "date"
	params.Order = "desc"
	return c.Events(ctx, params)
}

// Players lists players with embedded media.
func (c *Client) Players(ctx context.Context, params PlayersParams) ([]Player, error) {
	params.Embed = true
	var players []Player
	if err := c.get(ctx, "/players", params, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// Player returns a single player with embedded media.
func (c *Client) Player(ctx context.Context, id int) (Player, error) {
	var player Player
	if err := c.get(ctx, fmt.Sprintf("/players/%d", id), embedParams{Embed: true}, &player); err != nil {
		return Player{}, err
	}
	return player, nil
}

// PlayerBySlug returns the first player whose slug matches. An empty result
// is a *NotFoundError.
func (c *Client) PlayerBySlug(ctx context.Context, slug string) (Player, error) {
	var players []Player
	if err := c.get(ctx, "/players", PlayersParams{Slug: slug}, &players); err != nil {
		return Player{}, err
	}
	if len(players) == 0 {
		return Player{}, &NotFoundError{Kind: "player", Key: slug}
	}
	return players[0], nil
}

// Teams lists teams.
func (c *Client) Teams(ctx context.Context, params TeamsParams) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/teams", params, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Team returns a single team with embedded media.
func (c *Client) Team(ctx context.Context, id int) (Team, error) {
	var team Team
	if err := c.get(ctx, fmt.Sprintf("/teams/%d", id), embedParams{Embed: true}, &team); err != nil {
		return Team{}, err
	}
	return team, nil
}

// TeamBySlug returns the first team whose slug matches. An empty result is a
// *NotFoundError.
func (c *Client) TeamBySlug(ctx context.Context, slug string) (Team, error) {
	var teams []Team
	if err := c.get(ctx, "/teams", TeamsParams{Slug: slug}, &teams); err != nil {
		return Team{}, err
	}
	if len(teams) == 0 {
		return Team{}, &NotFoundError{Kind: "team", Key: slug}
	}
	return teams[0], nil
}

// Tables lists league tables. With no league or season the API returns the
// latest first.
func (c *Client) Tables(ctx context.Context, params TablesParams) ([]Table, error) {
	var tables []Table
	if err := c.get(ctx, "/tables", params, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/bblctl/internal/cache"
	"github.com/staranto/bblctl/internal/sportspress"
	"github.com/staranto/bblctl/internal/standings"
)

const (
	// DefaultLeague and DefaultSeason select the current competition.
	DefaultLeague = 69
	DefaultSeason = 239

	// PlayerPages is how many pages of players are requested for the full
	// player list.
	PlayerPages = 8
	// PerPage is the page size used for every list request.
	PerPage = 100

	allKey = "all"
)

// Client is the subset of the SportsPress client the loaders use.
type Client interface {
	Tables(ctx context.Context, params sportspress.TablesParams) ([]sportspress.Table, error)
	Players(ctx context.Context, params sportspress.PlayersParams) ([]sportspress.Player, error)
	Player(ctx context.Context, id int) (sportspress.Player, error)
	PlayerBySlug(ctx context.Context, slug string) (sportspress.Player, error)
	Teams(ctx context.Context, params sportspress.TeamsParams) ([]sportspress.Team, error)
	Team(ctx context.Context, id int) (sportspress.Team, error)
	Events(ctx context.Context, params sportspress.EventsParams) ([]sportspress.Event, error)
	Event(ctx context.Context, id int) (sportspress.Event, error)
}

// Loader is built once per process. Its caches live as long as it does.
type Loader struct {
	client Client
	league int
	season int

	tables   *cache.Cache[sportspress.TablesParams, []sportspress.Table]
	players  *cache.Cache[string, []sportspress.Player]
	player   *cache.Cache[int, sportspress.Player]
	teams    *cache.Cache[string, []sportspress.Team]
	team     *cache.Cache[int, sportspress.Team]
	roster   *cache.Cache[int, []sportspress.Player]
	match    *cache.Cache[int, sportspress.Event]
	schedule *cache.Cache[string, Schedule]
}

type options struct {
	league    int
	season    int
	cacheOpts []cache.Option
}

// Option customizes a Loader.
type Option func(*options)

// WithLeague sets the league whose statistics and schedule are loaded.
func WithLeague(id int) Option {
	return func(o *options) {
		if id > 0 {
			o.league = id
		}
	}
}

// WithSeason sets the season whose statistics and schedule are loaded.
func WithSeason(id int) Option {
	return func(o *options) {
		if id > 0 {
			o.season = id
		}
	}
}

// WithCacheOptions applies opts to every cache the loader creates.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(o *options) { o.cacheOpts = append(o.cacheOpts, opts...) }
}

// New returns a Loader backed by client.
func New(client Client, opts ...Option) *Loader {
	o := options{league: DefaultLeague, season: DefaultSeason}
	for _, opt := range opts {
		opt(&o)
	}

	named := func(name string) []cache.Option {
		return append(append([]cache.Option{}, o.cacheOpts...), cache.WithName(name))
	}

	return &Loader{
		client:   client,
		league:   o.league,
		season:   o.season,
		tables:   cache.New[sportspress.TablesParams, []sportspress.Table](named("tables")...),
		players:  cache.New[string, []sportspress.Player](named("players")...),
		player:   cache.New[int, sportspress.Player](named("player")...),
		teams:    cache.New[string, []sportspress.Team](named("teams")...),
		team:     cache.New[int, sportspress.Team](named("team")...),
		roster:   cache.New[int, []sportspress.Player](named("roster")...),
		match:    cache.New[int, sportspress.Event](named("match")...),
		schedule: cache.New[string, Schedule](named("schedule")...),
	}
}

// League returns the configured league ID.
func (l *Loader) League() int { return l.league }

// Season returns the configured season ID.
func (l *Loader) Season() int { return l.season }

// StandingsView is one parsed league table.
type StandingsView struct {
	TableID int             `json:"tableId"`
	Title   string          `json:"title"`
	Rows    []standings.Row `json:"rows"`
}

func newStandingsView(t sportspress.Table) StandingsView {
	return StandingsView{
		TableID: t.ID,
		Title:   t.Title.Text(),
		Rows:    standings.Parse(t),
	}
}

func (l *Loader) loadTables(ctx context.Context, params sportspress.TablesParams) ([]sportspress.Table, error) {
	return cache.Fetch(ctx, l.tables, params, func(ctx context.Context) ([]sportspress.Table, error) {
		return l.client.Tables(ctx, params)
	})
}

// Standings returns the latest league table. With no tables upstream the view
// is empty.
func (l *Loader) Standings(ctx context.Context) (StandingsView, error) {
	tables, err := l.loadTables(ctx, sportspress.TablesParams{})
	if err != nil {
		return StandingsView{}, fmt.Errorf("failed to load standings: %w", err)
	}
	if len(tables) == 0 {
		return StandingsView{Rows: []standings.Row{}}, nil
	}
	return newStandingsView(tables[0]), nil
}

// AllStandings returns every table matching params, each parsed on its own.
func (l *Loader) AllStandings(ctx context.Context, params sportspress.TablesParams) ([]StandingsView, error) {
	tables, err := l.loadTables(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}

	views := make([]StandingsView, 0, len(tables))
	for i, rows := range standings.ParseAll(tables) {
		views = append(views, StandingsView{
			TableID: tables[i].ID,
			Title:   tables[i].Title.Text(),
			Rows:    rows,
		})
	}
	return views, nil
}

// Players returns every player across PlayerPages pages, in page order.
func (l *Loader) Players(ctx context.Context) ([]sportspress.Player, error) {
	players, err := cache.Fetch(ctx, l.players, allKey, func(ctx context.Context) ([]sportspress.Player, error) {
		pages := make([][]sportspress.Player, PlayerPages)

		var g errgroup.Group
		for i := range pages {
			page := i + 1
			g.Go(func() error {
				ps, err := l.client.Players(ctx, sportspress.PlayersParams{PerPage: PerPage, Page: page})
				if err != nil {
					return fmt.Errorf("page %d: %w", page, err)
				}
				pages[page-1] = ps
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var all []sportspress.Player
		for _, ps := range pages {
			all = append(all, ps...)
		}
		log.Debugf("loaded %d players", len(all))
		return all, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	return players, nil
}

// Player returns a single player.
func (l *Loader) Player(ctx context.Context, id int) (sportspress.Player, error) {
	p, err := cache.Fetch(ctx, l.player, id, func(ctx context.Context) (sportspress.Player, error) {
		return l.client.Player(ctx, id)
	})
	if err != nil {
		return sportspress.Player{}, fmt.Errorf("failed to load player %d: %w", id, err)
	}
	return p, nil
}

// PlayerBySlug resolves slug and caches the player under its ID.
func (l *Loader) PlayerBySlug(ctx context.Context, slug string) (sportspress.Player, error) {
	p, err := l.client.PlayerBySlug(ctx, slug)
	if err != nil {
		return sportspress.Player{}, err
	}
	l.player.Put(p.ID, p)
	return p, nil
}

// Teams returns every team with embedded media.
func (l *Loader) Teams(ctx context.Context) ([]sportspress.Team, error) {
	teams, err := cache.Fetch(ctx, l.teams, allKey, func(ctx context.Context) ([]sportspress.Team, error) {
		return l.client.Teams(ctx, sportspress.TeamsParams{PerPage: PerPage, Embed: true})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	return teams, nil
}

func (l *Loader) loadTeam(ctx context.Context, id int) (sportspress.Team, error) {
	return cache.Fetch(ctx, l.team, id, func(ctx context.Context) (sportspress.Team, error) {
		return l.client.Team(ctx, id)
	})
}

func (l *Loader) loadRoster(ctx context.Context, id int) ([]sportspress.Player, error) {
	return cache.Fetch(ctx, l.roster, id, func(ctx context.Context) ([]sportspress.Player, error) {
		players, err := l.client.Players(ctx, sportspress.PlayersParams{Team: id, PerPage: PerPage})
		if err != nil {
			return nil, err
		}
		active := make([]sportspress.Player, 0, len(players))
		for _, p := range players {
			if s, ok := p.SeasonStats(l.league, l.season); ok && s.Games.Int() > 0 {
				active = append(active, p)
			}
		}
		return active, nil
	})
}

// TeamView is a team with the players who have appeared for it this season.
type TeamView struct {
	Team   sportspress.Team     `json:"team"`
	Roster []sportspress.Player `json:"roster"`
}

// Team loads the team and its roster concurrently.
func (l *Loader) Team(ctx context.Context, id int) (TeamView, error) {
	var v TeamView

	var g errgroup.Group
	g.Go(func() (err error) {
		v.Team, err = l.loadTeam(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		v.Roster, err = l.loadRoster(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return TeamView{}, fmt.Errorf("failed to load team %d: %w", id, err)
	}
	return v, nil
}

// MatchView is an event with the teams that played in it, in event order.
type MatchView struct {
	Match sportspress.Event  `json:"match"`
	Teams []sportspress.Team `json:"teams"`
}

// Match loads the event then each of its teams concurrently.
func (l *Loader) Match(ctx context.Context, id int) (MatchView, error) {
	event, err := cache.Fetch(ctx, l.match, id, func(ctx context.Context) (sportspress.Event, error) {
		return l.client.Event(ctx, id)
	})
	if err != nil {
		return MatchView{}, fmt.Errorf("failed to load match %d: %w", id, err)
	}

	teams := make([]sportspress.Team, len(event.Teams))
	var g errgroup.Group
	for i, teamID := range event.Teams {
		g.Go(func() (err error) {
			teams[i], err = l.loadTeam(ctx, teamID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return MatchView{}, fmt.Errorf("failed to load teams for match %d: %w", id, err)
	}

	return MatchView{Match: event, Teams: teams}, nil
}

// Schedule is the season's events together with the teams that play them.
type Schedule struct {
	Matches []sportspress.Event `json:"matches"`
	Teams   []sportspress.Team  `json:"teams"`
}

// TeamName returns the name of the team with id, or "".
func (s Schedule) TeamName(id int) string {
	for _, t := range s.Teams {
		if t.ID == id {
			return t.Name()
		}
	}
	return ""
}

// Schedule loads the season's events and teams concurrently. Both are cached
// together.
func (l *Loader) Schedule(ctx context.Context) (Schedule, error) {
	s, err := cache.Fetch(ctx, l.schedule, allKey, func(ctx context.Context) (Schedule, error) {
		var s Schedule

		var g errgroup.Group
		g.Go(func() (err error) {
			s.Matches, err = l.client.Events(ctx, sportspress.EventsParams{
				League: l.league, Season: l.season, PerPage: PerPage,
			})
			return err
		})
		g.Go(func() (err error) {
			s.Teams, err = l.client.Teams(ctx, sportspress.TeamsParams{
				League: l.league, Season: l.season, PerPage: PerPage, Embed: true,
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return Schedule{}, err
		}
		log.Debugf("loaded %d matches and %d teams", len(s.Matches), len(s.Teams))
		return s, nil
	})
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to load schedule: %w", err)
	}
	return s, nil
}

// CacheSizes reports the number of entries in each cache by name.
func (l *Loader) CacheSizes() map[string]int {
	return map[string]int{
		l.tables.Name():   l.tables.Len(),
		l.players.Name():  l.players.Len(),
		l.player.Name():   l.player.Len(),
		l.teams.Name():    l.teams.Len(),
		l.team.Name():     l.team.Len(),
		l.roster.Name():   l.roster.Len(),
		l.match.Name():    l.match.Len(),
		l.schedule.Name(): l.schedule.Len(),
	}
}

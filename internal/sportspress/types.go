// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sportspress

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rendered is the WordPress {"rendered": "..."} wrapper. The content is HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Text returns the rendered HTML as plain text with entities decoded.
func (r Rendered) Text() string {
	if !strings.ContainsAny(r.Rendered, "<&") {
		return strings.TrimSpace(r.Rendered)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.Rendered))
	if err != nil {
		return strings.TrimSpace(r.Rendered)
	}
	return strings.TrimSpace(doc.Text())
}

// Media is an embedded wp:featuredmedia item.
type Media struct {
	ID           int    `json:"id"`
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

// SizeURL returns the URL for the named image size, or "".
func (m Media) SizeURL(size string) string {
	if s, ok := m.MediaDetails.Sizes[size]; ok {
		return s.SourceURL
	}
	return ""
}

// Embedded holds the _embed payload.
type Embedded struct {
	FeaturedMedia []Media `json:"wp:featuredmedia"`
}

// PlayerStats is one league/season line from a player's statistics.
type PlayerStats struct {
	Team   Text    `json:"team"`
	Points Number  `json:"pts"`
	PPG    Number  `json:"ppg"`
	APG    Number  `json:"apg"`
	RPG    Number  `json:"rpg"`
	SPG    Number  `json:"spg"`
	BPG    Number  `json:"bpg"`
	EFF    Number  `json:"eff"`
	Games  Number  `json:"g"`
	FGM    *Number `json:"fgm,omitempty"`
	FGA    *Number `json:"fga,omitempty"`
	FGPct  *Number `json:"fg_pct,omitempty"`
	TPM    *Number `json:"3pm,omitempty"`
	TPA    *Number `json:"3pa,omitempty"`
	TPPct  *Number `json:"3p_pct,omitempty"`
	FTM    *Number `json:"ftm,omitempty"`
	FTA    *Number `json:"fta,omitempty"`
	FTPct  *Number `json:"ft_pct,omitempty"`
	ORPG   *Number `json:"orpg,omitempty"`
	DRPG   *Number `json:"drpg,omitempty"`
	TOV    *Number `json:"tov,omitempty"`
	PF     *Number `json:"pf,omitempty"`
}

// StatsByLeagueSeason indexes statistics by league ID then season ID, both as
// strings since that is how they arrive as JSON object keys.
type StatsByLeagueSeason map[string]map[string]PlayerStats

func (s *StatsByLeagueSeason) UnmarshalJSON(data []byte) error {
	*s = StatsByLeagueSeason{}
	if notAnObject(data) {
		return nil
	}

	var leagues map[string]json.RawMessage
	if err := json.Unmarshal(data, &leagues); err != nil {
		return err
	}

	for league, raw := range leagues {
		if notAnObject(raw) {
			continue
		}
		var seasons map[string]json.RawMessage
		if err := json.Unmarshal(raw, &seasons); err != nil {
			continue
		}
		for season, line := range seasons {
			if notAnObject(line) {
				continue
			}
			var ps PlayerStats
			if err := json.Unmarshal(line, &ps); err != nil {
				continue
			}
			if (*s)[league] == nil {
				(*s)[league] = map[string]PlayerStats{}
			}
			(*s)[league][season] = ps
		}
	}
	return nil
}

// PlayerMetrics are the free-form player metrics. Height is in cm and weight
// in kg.
type PlayerMetrics struct {
	Height Text `json:"height"`
	Weight Text `json:"weight"`
}

func (m *PlayerMetrics) UnmarshalJSON(data []byte) error {
	*m = PlayerMetrics{}
	if notAnObject(data) {
		return nil
	}
	type plain PlayerMetrics
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = PlayerMetrics(p)
	return nil
}

// Player is a /players item.
type Player struct {
	ID            int                 `json:"id"`
	Title         Rendered            `json:"title"`
	Slug          string              `json:"slug"`
	Leagues       []int               `json:"leagues"`
	Seasons       []int               `json:"seasons"`
	CurrentTeams  []int               `json:"current_teams"`
	Nationalities []string            `json:"nationalities"`
	Metrics       PlayerMetrics       `json:"metrics"`
	Number        Text                `json:"number"`
	Statistics    StatsByLeagueSeason `json:"statistics"`
	Position      Text                `json:"position,omitempty"`
	DateOfBirth   string              `json:"date_of_birth,omitempty"`
	Link          string              `json:"link,omitempty"`
	FeaturedMedia int                 `json:"featured_media,omitempty"`
	Embedded      *Embedded           `json:"_embedded,omitempty"`
}

// Name returns the player's display name.
func (p Player) Name() string {
	return p.Title.Text()
}

// SeasonStats returns the statistics line for the league and season.
func (p Player) SeasonStats(league, season int) (PlayerStats, bool) {
	seasons, ok := p.Statistics[itoa(league)]
	if !ok {
		return PlayerStats{}, false
	}
	ps, ok := seasons[itoa(season)]
	return ps, ok
}

// PhotoURL prefers the thumbnail size, then the SportsPress icon size, then
// the original upload.
func (p Player) PhotoURL() string {
	if p.Embedded == nil || len(p.Embedded.FeaturedMedia) == 0 {
		return ""
	}
	m := p.Embedded.FeaturedMedia[0]
	for _, size := range []string{"thumbnail", "sportspress-fit-icon"} {
		if u := m.SizeURL(size); u != "" {
			return u
		}
	}
	return m.SourceURL
}

// TeamColors are the team's primary and secondary colors.
type TeamColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Team is a /teams item.
type Team struct {
	ID            int         `json:"id"`
	Title         Rendered    `json:"title"`
	Slug          string      `json:"slug"`
	Leagues       []int       `json:"leagues"`
	Seasons       []int       `json:"seasons"`
	Abbreviation  Text        `json:"abbreviation"`
	Logo          string      `json:"logo,omitempty"`
	Venue         Text        `json:"venue,omitempty"`
	Colors        *TeamColors `json:"colors,omitempty"`
	Link          string      `json:"link,omitempty"`
	Content       Rendered    `json:"content"`
	URL           string      `json:"url,omitempty"`
	FeaturedMedia int         `json:"featured_media,omitempty"`
	Embedded      *Embedded   `json:"_embedded,omitempty"`
}

// Name returns the team's display name.
func (t Team) Name() string {
	return t.Title.Text()
}

// LogoURL returns the first embedded media URL, falling back to Logo.
func (t Team) LogoURL() string {
	if t.Embedded != nil && len(t.Embedded.FeaturedMedia) > 0 {
		return t.Embedded.FeaturedMedia[0].SourceURL
	}
	return t.Logo
}

// TeamResult is one team's line in an event's results.
type TeamResult struct {
	Points Number `json:"points"`
	One    Number `json:"one"`
	Two    Number `json:"two"`
	Three  Number `json:"three"`
	Four   Number `json:"four"`
	OT     Number `json:"ot"`
}

// Quarters returns the four regulation periods followed by overtime.
func (r TeamResult) Quarters() []int {
	return []int{r.One.Int(), r.Two.Int(), r.Three.Int(), r.Four.Int(), r.OT.Int()}
}

// EventResults indexes results by team ID.
type EventResults map[string]TeamResult

func (r *EventResults) UnmarshalJSON(data []byte) error {
	*r = EventResults{}
	if notAnObject(data) {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for team, line := range raw {
		if notAnObject(line) {
			continue
		}
		var tr TeamResult
		if err := json.Unmarshal(line, &tr); err != nil {
			continue
		}
		(*r)[team] = tr
	}
	return nil
}

// Event statuses as reported by WordPress.
const (
	StatusPublished = "publish"
	StatusFuture    = "future"
)

// Event is an /events item (a match).
type Event struct {
	ID      int          `json:"id"`
	Title   Rendered     `json:"title"`
	Slug    string       `json:"slug"`
	Date    string       `json:"date"`
	Time    string       `json:"time,omitempty"`
	Leagues []int        `json:"leagues"`
	Seasons []int        `json:"seasons"`
	Teams   []int        `json:"teams"`
	Venue   Text         `json:"venue,omitempty"`
	Status  string       `json:"status"`
	Results EventResults `json:"results"`
	Link    string       `json:"link,omitempty"`
}

// Completed reports whether the event has been played.
func (e Event) Completed() bool {
	return e.Status == StatusPublished
}

// Upcoming reports whether the event is scheduled in the future.
func (e Event) Upcoming() bool {
	return e.Status == StatusFuture
}

// Result returns the results line for the team.
func (e Event) Result(teamID int) (TeamResult, bool) {
	r, ok := e.Results[itoa(teamID)]
	return r, ok
}

// HasTeam reports whether teamID plays in the event.
func (e Event) HasTeam(teamID int) bool {
	for _, t := range e.Teams {
		if t == teamID {
			return true
		}
	}
	return false
}

// Table is a /tables item (a league table). Data stays raw; its records are
// loosely typed and belong to the standings parser.
type Table struct {
	ID      int             `json:"id"`
	Title   Rendered        `json:"title"`
	Leagues []int           `json:"leagues"`
	Seasons []int           `json:"seasons"`
	Data    json.RawMessage `json:"data"`
}

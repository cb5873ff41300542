// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/mux"

	"github.com/staranto/bblctl/internal/leaderboard"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/sportspress"
)

// Loader is the set of route loaders the server serves.
type Loader interface {
	League() int
	Season() int
	Standings(ctx context.Context) (loader.StandingsView, error)
	AllStandings(ctx context.Context, params sportspress.TablesParams) ([]loader.StandingsView, error)
	Players(ctx context.Context) ([]sportspress.Player, error)
	Player(ctx context.Context, id int) (sportspress.Player, error)
	PlayerBySlug(ctx context.Context, slug string) (sportspress.Player, error)
	Teams(ctx context.Context) ([]sportspress.Team, error)
	Team(ctx context.Context, id int) (loader.TeamView, error)
	Match(ctx context.Context, id int) (loader.MatchView, error)
	Schedule(ctx context.Context) (loader.Schedule, error)
	CacheSizes() map[string]int
}

// errBadRequest marks client input errors.
var errBadRequest = errors.New("bad request")

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the loaders.
type Server struct {
	loader  Loader
	metrics *Metrics
	router  *mux.Router
}

// New returns a Server for ld. metrics may be nil.
func New(ld Loader, metrics *Metrics) *Server {
	s := &Server{loader: ld, metrics: metrics, router: mux.NewRouter()}

	r := s.router
	r.Use(s.instrument)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/standings", s.handleStandings).Methods(http.MethodGet)
	r.HandleFunc("/standings/all", s.handleAllStandings).Methods(http.MethodGet)
	r.HandleFunc("/players", s.handlePlayers).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", s.handlePlayer).Methods(http.MethodGet)
	r.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	r.HandleFunc("/teams/{id}", s.handleTeam).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", s.handleMatch).Methods(http.MethodGet)
	r.HandleFunc("/schedule", s.handleSchedule).Methods(http.MethodGet)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such route"})
	})

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument logs each request and records its duration.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		elapsed := time.Since(start)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": elapsed.Round(time.Microsecond),
		}).Info("request")

		if s.metrics != nil {
			s.metrics.ObserveRequest(route, rec.status, elapsed)
		}
	})
}

type errorBody struct {
	Error          string `json:"error"`
	UpstreamStatus *int   `json:"upstreamStatus,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// writeError maps err to a status: not found is 404, upstream failures are
// 502 carrying the upstream status, bad input is 400.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *sportspress.APIError
	switch {
	case errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, sportspress.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		log.WithError(err).Warn("upstream failure")
		writeJSON(w, http.StatusBadGateway, errorBody{Error: err.Error(), UpstreamStatus: &status})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, raw)
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, key, raw)
	}
	return n, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"caches": s.loader.CacheSizes(),
	})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	v, err := s.loader.Standings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleAllStandings(w http.ResponseWriter, r *http.Request) {
	league, err := queryInt(r, "league")
	if err != nil {
		writeError(w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(w, err)
		return
	}

	views, err := s.loader.AllStandings(r.Context(), sportspress.TablesParams{League: league, Season: season})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": views})
}

type playersResponse struct {
	Total int               `json:"total"`
	Rows  []leaderboard.Row `json:"rows"`
}

// handlePlayers serves the leaderboard. Query: search, min_games, sort,
// order (asc|desc) and limit.
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minGames, err := queryInt(r, "min_games")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	column := q.Get("sort")
	if column == "" {
		column = leaderboard.ColPoints
	}
	desc := leaderboard.DefaultOrder(column)
	switch strings.ToLower(q.Get("order")) {
	case "":
	case "asc":
		desc = false
	case "desc":
		desc = true
	default:
		writeError(w, fmt.Errorf("%w: order must be asc or desc", errBadRequest))
		return
	}

	players, err := s.loader.Players(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	rows := leaderboard.Filter(leaderboard.FromPlayers(players, s.loader.League(), s.loader.Season()), q.Get("search"), minGames)
	if err := leaderboard.Sort(rows, column, desc); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	total := len(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	writeJSON(w, http.StatusOK, playersResponse{Total: total, Rows: rows})
}

type playerResponse struct {
	Player sportspress.Player       `json:"player"`
	Season *sportspress.PlayerStats `json:"season,omitempty"`
	Career *leaderboard.Career      `json:"career,omitempty"`
}

// handlePlayer accepts a numeric ID or a slug.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]

	var (
		p   sportspress.Player
		err error
	)
	if _, convErr := strconv.Atoi(raw); convErr == nil {
		id, idErr := pathID(r)
		if idErr != nil {
			writeError(w, idErr)
			return
		}
		p, err = s.loader.Player(r.Context(), id)
	} else {
		p, err = s.loader.PlayerBySlug(r.Context(), raw)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := playerResponse{Player: p}
	if st, ok := p.SeasonStats(s.loader.League(), s.loader.Season()); ok {
		resp.Season = &st
	}
	if c, ok := leaderboard.CareerTotals(p, s.loader.League()); ok {
		resp.Career = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.loader.Teams(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

type teamResponse struct {
	Team   sportspress.Team   `json:"team"`
	Roster []leaderboard.Row  `json:"roster"`
	Totals leaderboard.Totals `json:"totals"`
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	v, err := s.loader.Team(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	league, season := s.loader.League(), s.loader.Season()
	writeJSON(w, http.StatusOK, teamResponse{
		Team:   v.Team,
		Roster: leaderboard.FromPlayers(leaderboard.ByPoints(v.Roster, league, season), league, season),
		Totals: leaderboard.TeamTotals(v.Roster, league, season),
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	v, err := s.loader.Match(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// handleSchedule serves the season's matches. Query: team and status
// (all|upcoming|completed).
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	team, err := queryInt(r, "team")
	if err != nil {
		writeError(w, err)
		return
	}

	sched, err := s.loader.Schedule(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	matches, err := sched.Filter(team, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, loader.Schedule{Matches: matches, Teams: sched.Teams})
}

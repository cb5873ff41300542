// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"sort"
	"time"

	"github.com/staranto/bblctl/internal/format"
	"github.com/staranto/bblctl/internal/sportspress"
)

// Match status selectors for Schedule.Filter.
const (
	StatusAll       = "all"
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// Statuses lists the accepted status selectors.
var Statuses = []string{StatusAll, StatusUpcoming, StatusCompleted}

// Filter returns the matches involving teamID (0 for any team) with status.
// Completed matches come most recent first, everything else soonest first.
// Matches with an unparseable date sort last.
func (s Schedule) Filter(teamID int, status string) ([]sportspress.Event, error) {
	if status == "" {
		status = StatusAll
	}

	var keep func(sportspress.Event) bool
	switch status {
	case StatusAll:
		keep = func(sportspress.Event) bool { return true }
	case StatusUpcoming:
		keep = sportspress.Event.Upcoming
	case StatusCompleted:
		keep = sportspress.Event.Completed
	default:
		return nil, fmt.Errorf("invalid status %q: must be one of %v", status, Statuses)
	}

	out := make([]sportspress.Event, 0, len(s.Matches))
	for _, m := range s.Matches {
		if teamID > 0 && !m.HasTeam(teamID) {
			continue
		}
		if keep(m) {
			out = append(out, m)
		}
	}

	dates := make(map[int]time.Time, len(out))
	for _, m := range out {
		if t, err := format.ParseDate(m.Date); err == nil {
			dates[m.ID] = t
		}
	}

	newestFirst := status == StatusCompleted
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := dates[out[i].ID]
		b, bok := dates[out[j].ID]
		switch {
		case !aok || !bok:
			return aok && !bok
		case newestFirst:
			return a.After(b)
		default:
			return a.Before(b)
		}
	})
	return out, nil
}

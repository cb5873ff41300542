// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/bblctl/internal/sportspress"
)

func TestSchedule_Filter(t *testing.T) {
	s := Schedule{Matches: []sportspress.Event{
		{ID: 1, Date: "2025-10-04T18:00:00", Teams: []int{10, 20}, Status: sportspress.StatusPublished},
		{ID: 2, Date: "2025-11-01T18:00:00", Teams: []int{10, 30}, Status: sportspress.StatusFuture},
		{ID: 3, Date: "2025-10-11T18:00:00", Teams: []int{20, 30}, Status: sportspress.StatusPublished},
		{ID: 4, Date: "2025-10-25T18:00:00", Teams: []int{20, 10}, Status: sportspress.StatusFuture},
		{ID: 5, Date: "tbd", Teams: []int{10, 20}, Status: sportspress.StatusFuture},
	}}

	tests := []struct {
		name   string
		team   int
		status string
		want   []int
	}{
		{"all soonest first", 0, "", []int{1, 3, 4, 2, 5}},
		{"upcoming", 0, StatusUpcoming, []int{4, 2, 5}},
		{"completed newest first", 0, StatusCompleted, []int{3, 1}},
		{"team", 30, StatusAll, []int{3, 2}},
		{"team completed", 10, StatusCompleted, []int{1}},
		{"no matches", 99, StatusAll, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Filter(tt.team, tt.status)
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSchedule_FilterBadStatus(t *testing.T) {
	_, err := Schedule{}.Filter(0, "live")
	assert.ErrorContains(t, err, `invalid status "live"`)
}

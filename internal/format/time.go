// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
	week           = 7 * 24 * time.Hour
)

// Layouts accepted for API dates. SportsPress emits local times without a
// zone.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an API date string.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Date formats an API date as "Jan 2, 2006". Unparseable input is returned
// as is.
func Date(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(dateLayout)
}

// DateTime formats an API date as "Jan 2, 2006, 3:04 PM".
func DateTime(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(dateTimeLayout)
}

// Time converts a 24h "HH:MM[:SS]" time to 12h, e.g. "19:30" -> "7:30 PM".
func Time(s string) string {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return s
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return s
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, period)
}

var (
	pastMagnitudes = []humanize.RelTimeMagnitude{
		{D: time.Minute, Format: "just now", DivBy: time.Second},
		{D: time.Hour, Format: "%d min ago", DivBy: time.Minute},
		{D: 24 * time.Hour, Format: "%dh ago", DivBy: time.Hour},
		{D: week, Format: "%dd ago", DivBy: 24 * time.Hour},
	}
	futureMagnitudes = []humanize.RelTimeMagnitude{
		{D: time.Minute, Format: "just now", DivBy: time.Second},
		{D: time.Hour, Format: "in %d min", DivBy: time.Minute},
		{D: 24 * time.Hour, Format: "in %dh", DivBy: time.Hour},
		{D: week, Format: "in %dd", DivBy: 24 * time.Hour},
	}
)

// RelativeTime describes t relative to now, e.g. "5 min ago" or "in 3d".
// Anything a week or more away falls back to Date.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mags := pastMagnitudes
	if diff < 0 {
		diff = -diff
		mags = futureMagnitudes
	}
	if diff >= week {
		return t.Format(dateLayout)
	}
	return humanize.CustomRelTime(t, now, "", "", mags)
}

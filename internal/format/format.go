// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package format renders numbers, records and dates as display strings.
// Nothing here feeds back into computation.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Missing is shown for values that are absent or not numeric.
const Missing = "-"

// Number formats v with a fixed number of decimals. v may be a number, a
// numeric string or a pointer to one; nil, empty and NaN give Missing.
func Number(v any, decimals int) string {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return Missing
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	case fmt.Stringer:
		return toFloat(x.String())
	default:
		return 0, false
	}
}

// Percentage formats a 0..1 ratio as a percentage, e.g. 0.75 -> "75.0%".
// ok=false gives Missing, matching the shooting percentage helpers.
func Percentage(v float64, ok bool, decimals int) string {
	if !ok || math.IsNaN(v) {
		return Missing
	}
	return strconv.FormatFloat(v*100, 'f', decimals, 64) + "%"
}

// WinPercentage formats a record's win percentage in the conventional
// three-decimal notation, e.g. ".750". A team with no games shows ".000".
func WinPercentage(wins, losses int) string {
	total := wins + losses
	if total == 0 {
		return ".000"
	}
	s := strconv.FormatFloat(float64(wins)/float64(total), 'f', 3, 64)
	return strings.TrimPrefix(s, "0")
}

// Record formats wins and losses as "W-L".
func Record(wins, losses int) string {
	return fmt.Sprintf("%d-%d", wins, losses)
}

// Streak returns s, or Missing when empty.
func Streak(s string) string {
	if s == "" {
		return Missing
	}
	return s
}

// Height converts centimeters to feet and inches, e.g. "198" -> 6'6".
func Height(cm string) string {
	v, ok := leadingInt(cm)
	if !ok || v == 0 {
		return Missing
	}
	inches := float64(v) / 2.54
	feet := int(inches / 12)
	rest := int(math.Round(math.Mod(inches, 12)))
	return fmt.Sprintf("%d'%d\"", feet, rest)
}

// Weight converts kilograms to pounds, e.g. "95" -> "209 lbs".
func Weight(kg string) string {
	v, ok := leadingInt(kg)
	if !ok || v == 0 {
		return Missing
	}
	return fmt.Sprintf("%d lbs", int(math.Round(float64(v)*2.20462)))
}

// leadingInt parses the integer prefix of s, so "198 cm" reads as 198.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	return v, err == nil
}

// WithCommas groups thousands, e.g. 1234567 -> "1,234,567".
func WithCommas(n int64) string {
	return humanize.Comma(n)
}

// Ordinal formats a table position, e.g. 2 -> "2nd".
func Ordinal(n int) string {
	return humanize.Ordinal(n)
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package standings

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// RawRecord is one entry of a table's data object after coercion.
type RawRecord struct {
	TeamID        int
	Position      int
	Name          string
	Wins          int
	Losses        int
	WinPct        float64
	GamesBehind   *float64
	PointsFor     int
	PointsAgainst int
	Differential  int
	Home          *string
	Away          *string
	Last10        *string
	Streak        string
	Form          string
}

// NewRawRecord coerces a data entry. key is the team ID as it appears in the
// data object.
func NewRawRecord(key string, entry gjson.Result) RawRecord {
	id, _ := strconv.Atoi(strings.TrimSpace(key))

	r := RawRecord{
		TeamID:        id,
		Position:      intField(entry, "pos"),
		Name:          strings.TrimSpace(stringField(entry, "name")),
		Wins:          intField(entry, "w"),
		Losses:        intField(entry, "ltwo"),
		WinPct:        floatField(entry, "pct"),
		PointsFor:     intField(entry, "pf"),
		PointsAgainst: intField(entry, "pa"),
		Differential:  intField(entry, "diff"),
		Home:          optionalString(entry, "home"),
		Away:          optionalString(entry, "road"),
		Last10:        optionalString(entry, "lten"),
		Streak:        stringField(entry, "strk"),
		Form:          stringField(entry, "form"),
	}

	if gb, ok := number(entry.Get("gb")); ok {
		r.GamesBehind = &gb
	}

	return r
}

// Valid reports whether the record belongs in the standings. Entries without a
// positive position, a name and a positive games total are dropped.
func (r RawRecord) Valid() bool {
	return r.Position > 0 && r.Name != "" && r.Wins+r.Losses > 0
}

// number reads a JSON number or a numeric string.
func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func floatField(entry gjson.Result, key string) float64 {
	f, _ := number(entry.Get(key))
	return f
}

func intField(entry gjson.Result, key string) int {
	return int(floatField(entry, key))
}

func stringField(entry gjson.Result, key string) string {
	v := entry.Get(key)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	default:
		return ""
	}
}

func optionalString(entry gjson.Result, key string) *string {
	v := entry.Get(key)
	if v.Type != gjson.String && v.Type != gjson.Number {
		return nil
	}
	s := stringField(entry, key)
	return &s
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sportspress

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a best-effort numeric field. SportsPress emits statistics as JSON
// numbers, numeric strings, empty strings or null depending on the field and
// the plugin version; anything that does not parse becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(f)
		}
		return nil
	}

	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = Number(f)
	}
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// Int returns n truncated to an int.
func (n Number) Int() int {
	return int(n)
}

// Text is a best-effort string field that tolerates numbers, booleans and
// null where a string is expected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = Text(s)
	case '{', '[':
		// Not representable as text.
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// notAnObject reports whether data is null or a JSON array. PHP
// serializes an empty associative array as [], so object-typed fields show up
// that way when there is nothing in them.
func notAnObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return true
	}
	return data[0] == '['
}

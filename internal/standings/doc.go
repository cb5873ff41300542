// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package standings converts SportsPress league table payloads into ordered
// standings rows.
//
// The table data is a loosely typed object keyed by team ID. Numeric fields
// arrive as numbers or numeric strings and are coerced with defaults; the
// form and streak fields are HTML fragments from which only the W/L tokens
// are kept. Nothing in this package returns an error: shape problems in the
// payload turn into defaults or excluded rows.
package standings

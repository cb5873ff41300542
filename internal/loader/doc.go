// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package loader assembles the data behind each view (standings, players,
// teams, matches, schedule) from the SportsPress API.
//
// Every upstream resource kind is memoized in its own response cache for
// cache.TTL. Independent upstream calls are issued concurrently and the
// loader waits for all of them; the first error is returned and nothing from
// a failed fetch is cached.
package loader

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the per-process, time-boxed response cache used by
// the loaders to avoid repeated upstream calls inside the freshness window.
package cache

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the loaders as a read-only JSON API. One Server
// shares one Loader, so its caches live as long as the process.
package server

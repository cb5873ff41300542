// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version holds the build version, set with
// -ldflags "-X github.com/staranto/bblctl/internal/version.Version=...".
package version

var Version = "dev"

// UserAgent is sent with every upstream request.
func UserAgent() string {
	return "bblctl/" + Version
}

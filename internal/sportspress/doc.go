// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package sportspress is a read-only client for the SportsPress v2 REST API
// (events, players, teams and league tables) exposed by a WordPress site.
package sportspress

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/cache"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/server"
)

const metricsNamespace = "bblctl"

// ServeCommandAction runs the JSON API until interrupted.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "serve") {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *server.Metrics
	var cacheOpts []cache.Option
	if cmd.Bool("metrics") {
		metrics = server.NewMetrics(metricsNamespace)
		cacheOpts = append(cacheOpts, cache.WithObserver(metrics))
	}

	ld := NewLoader(cmd, cacheOpts...)
	if metrics != nil {
		metrics.WatchCacheSizes(metricsNamespace, ld.CacheSizes)
	}

	addr := cmd.String("addr")
	log.WithFields(log.Fields{
		"addr":   addr,
		"league": ld.League(),
		"season": ld.Season(),
	}).Info("starting server")

	return server.New(ld, metrics).ListenAndServe(ctx, addr)
}

// ServeCommandBuilder constructs the cli.Command for "serve".
func ServeCommandBuilder(meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Usage:   "listen address",
			Value:   ":8080",
			Sources: configSources("serve", "addr", "BBLCTL_ADDR"),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "metrics",
			Usage:   "expose Prometheus metrics on /metrics",
			Value:   true,
			Sources: configSources("serve", "metrics"),
		},
		newTldrFlag(),
	}
	flags = append(flags, NewConnectionFlags("serve")...)

	return &cli.Command{
		Name:      "serve",
		Usage:     "serve the JSON API",
		UsageText: "bblctl serve [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: ServeCommandAction,
	}
}

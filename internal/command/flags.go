// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/config"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/sportspress"
)

// newSchemaFlag and newTldrFlag return a new flag for each command. Parsed
// state lives in the flag.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// configSources builds a value chain of env vars followed by the namespaced
// and global keys of the config file.
func configSources(ns string, key string, envVars ...string) cli.ValueSourceChain {
	path := config.Config.Source

	sources := make([]cli.ValueSource, 0, len(envVars)+2)
	for _, e := range envVars {
		sources = append(sources, cli.EnvVar(e))
	}
	if ns != "" {
		sources = append(sources, yaml.YAML(ns+"."+key, altsrc.StringSourcer(path)))
	}
	sources = append(sources, yaml.YAML(key, altsrc.StringSourcer(path)))

	return cli.NewValueSourceChain(sources...)
}

// NewGlobalFlags returns the output flags shared by every query command,
// namespaced to ns in the config file.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: configSources(ns, "attrs"),
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: configSources(ns, "color"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Sources: configSources(ns, "filter"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: configSources(ns, "output", "BBLCTL_OUTPUT"),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: configSources(ns, "sort"),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, "titles"),
			Value:   false,
		},
	}

	return
}

// NewConnectionFlags returns the flags that select the upstream API and the
// competition.
func NewConnectionFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "SportsPress API root",
			Sources: configSources(ns, "base_url", "BBLCTL_BASE_URL"),
			Value:   sportspress.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.IntFlag{
			Name:    "league",
			Usage:   "league ID for statistics and schedule",
			Sources: configSources(ns, "league", "BBLCTL_LEAGUE"),
			Value:   loader.DefaultLeague,
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
		&cli.IntFlag{
			Name:    "season",
			Usage:   "season ID for statistics and schedule",
			Sources: configSources(ns, "season", "BBLCTL_SEASON"),
			Value:   loader.DefaultSeason,
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "per-request timeout",
			Sources: configSources(ns, "timeout", "BBLCTL_TIMEOUT"),
			Value:   30 * time.Second,
		},
		&cli.IntFlag{
			Name:    "retries",
			Usage:   "retries for failed requests",
			Sources: configSources(ns, "retries", "BBLCTL_RETRIES"),
			Value:   1,
		},
	}
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/attrs"
	"github.com/staranto/bblctl/internal/cache"
	"github.com/staranto/bblctl/internal/loader"
	"github.com/staranto/bblctl/internal/meta"
	"github.com/staranto/bblctl/internal/output"
	"github.com/staranto/bblctl/internal/sportspress"
	"github.com/staranto/bblctl/internal/version"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr bblctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "bblctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attributes of the provided row type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// EmitJSONSlice marshals a slice as JSON and passes it to the common output
// routine.
func EmitJSONSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return output.SliceDiceSpit(raw, al, cmd, "", writer(cmd))
}

// writer is where command output goes, stdout unless the root command was
// given another Writer.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if root := cmd.Root(); root != nil && root.Writer != nil {
			return root.Writer
		}
	}
	return os.Stdout
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewLoader builds the upstream client and loader from the connection flags.
func NewLoader(cmd *cli.Command, cacheOpts ...cache.Option) *loader.Loader {
	client := sportspress.NewClient(
		sportspress.WithBaseURL(cmd.String("base-url")),
		sportspress.WithTimeout(cmd.Duration("timeout")),
		sportspress.WithRetries(cmd.Int("retries")),
		sportspress.WithUserAgent(version.UserAgent()),
	)
	log.Debugf("client: %s", client.BaseURL())

	return loader.New(client,
		loader.WithLeague(cmd.Int("league")),
		loader.WithSeason(cmd.Int("season")),
		loader.WithCacheOptions(cacheOpts...),
	)
}

// ParseID parses a positive numeric ID argument.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

// requireArg returns the first positional argument or an error naming it.
func requireArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() < 1 {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return cmd.Args().First(), nil
}

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands using a consistent pattern. The builder wires metadata, adds
// the tldr/schema flags, applies the global and connection flags, and sets up
// validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, qcb.Flags...)
	flags = append(flags, newTldrFlag(), newSchemaFlag())
	flags = append(flags, NewGlobalFlags(qcb.Name)...)
	flags = append(flags, NewConnectionFlags(qcb.Name)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		ArgsUsage: qcb.ArgsUsage,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern for all
// query subcommands. It handles the meta lookup, short-circuit checks,
// BuildAttrs, schema dumping and output emission, with data fetching provided
// by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %s %v", qar.CommandName, m.Args)

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs)

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	if results == nil {
		results = []T{}
	}

	return EmitJSONSlice(results, attrs, cmd)
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bblctl/internal/output"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("schema") && c.String("output") == "raw" {
		return errors.New("--schema cannot be combined with --output raw")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	for _, v := range output.Formats {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", output.Formats)
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n <= 0 {
		return errors.New("must be a positive integer")
	}
	return nil
}

func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sportspress

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers detect them with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrDecode   = errors.New("failed to decode response")
)

// networkStatusText is used for failures that never produced an HTTP status.
const networkStatusText = "Network Error"

// APIError is returned for any upstream failure: a non-2xx status, or a
// transport failure in which case StatusCode is 0.
type APIError struct {
	StatusCode int
	StatusText string
	URL        string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("API request failed: %s: %v", e.StatusText, e.Err)
		}
		return "API request failed: " + e.StatusText
	}
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.StatusText)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a lookup by secondary key (a slug) that matched
// nothing. It satisfies errors.Is(err, ErrNotFound).
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with slug %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sportspress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultBaseURL is the league site's SportsPress endpoint.
	DefaultBaseURL = "https://bbl.hr/wp-json/sportspress/v2"

	defaultTimeout   = 30 * time.Second
	defaultRetries   = 1
	defaultUserAgent = "bblctl"
)

// Client issues GET requests against a SportsPress v2 API.
type Client struct {
	baseURL   string
	userAgent string
	http      *retryablehttp.Client
}

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	retries    int
	retryWait  time.Duration
	userAgent  string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithRetries sets how many times a failed request is retried. Only
// connection errors, 429 and 5xx responses are retried.
func WithRetries(n int) Option {
	return func(o *clientOptions) { o.retries = n }
}

// WithRetryWait sets the minimum backoff between retries.
func WithRetryWait(d time.Duration) Option {
	return func(o *clientOptions) { o.retryWait = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithHTTPClient replaces the underlying pooled client. The client is copied
// and the copy gets the configured timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// NewClient returns a Client for the API at DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	o := clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   defaultTimeout,
		retries:   defaultRetries,
		retryWait: 250 * time.Millisecond,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var hc *http.Client
	if o.httpClient != nil {
		c := *o.httpClient
		hc = &c
	} else {
		hc = cleanhttp.DefaultPooledClient()
	}
	hc.Timeout = o.timeout

	rc := retryablehttp.NewClient()
	rc.HTTPClient = hc
	rc.RetryMax = o.retries
	rc.RetryWaitMin = o.retryWait
	rc.RetryWaitMax = 8 * o.retryWait
	rc.Logger = leveledLogger{}
	// Hand back the final response so non-2xx statuses reach the caller
	// instead of a generic "giving up" error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:   o.baseURL,
		userAgent: o.userAgent,
		http:      rc,
	}
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get fetches endpoint with params encoded as the query string and decodes
// the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params any, out any) error {
	u, err := c.buildURL(endpoint, params)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.Debugf("GET %s", u)

	// With PassthroughErrorHandler an exhausted retry returns both the last
	// response and an error; the response status wins.
	resp, err := c.http.Do(req)
	if resp == nil {
		return &APIError{StatusText: networkStatusText, URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			URL:        u,
		}
	}
	if err != nil {
		return &APIError{StatusText: networkStatusText, URL: u, Err: err}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, endpoint, err)
	}

	return nil
}

func (c *Client) buildURL(endpoint string, params any) (string, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %w", err)
	}

	if params != nil {
		v, err := query.Values(params)
		if err != nil {
			return "", fmt.Errorf("failed to encode params: %w", err)
		}
		u.RawQuery = v.Encode()
	}

	return u.String(), nil
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// leveledLogger routes retryablehttp logging through apex/log.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Error(msg) }
func (leveledLogger) Info(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Debug(msg) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Debug(msg) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Warn(msg) }

func fields(kv []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}

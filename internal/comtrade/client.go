// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package comtrade

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
)

const DefaultBaseURL = "https://comtradeapi.un.org"

const defaultTimeout = 30 * time.Second

// ClientOptions configures the thin HTTP client. Insecure disables TLS
// certificate verification and exists only as a development escape hatch
// for hosts with broken certificate chains.
type ClientOptions struct {
	BaseURL  string
	Insecure bool
	Timeout  time.Duration
}

// Client issues plain GETs against the Comtrade host. It never retries
// and treats the response status as data for the caller to interpret: a
// non-200 is not an error here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	hc := &http.Client{Timeout: timeout}
	if opts.Insecure {
		log.Warn("TLS certificate verification is disabled")
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}

	return &Client{baseURL: baseURL, http: hc}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches url and returns the response status and body. Only
// transport-level failures (DNS, refused connection, timeout) produce an
// error; HTTP-level failures are left to the caller's "no data" policy.
func (c *Client) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

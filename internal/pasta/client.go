// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pasta resolves EDI DOIs to PASTA package coordinates, requests
// package archives, and downloads them.
//
// A run is three sequential HTTP calls against one PASTA host:
//
//	GET  /package/doi/{shoulder}/{pasta}/{md5}          resource map
//	POST /package/archive/eml/{scope}/{id}/{rev}        transaction id
//	GET  /package/archive/eml/{scope}/{id}/{rev}/{tx}   ZIP stream
//
// Any failure aborts the run. Nothing is retried or cached.
package pasta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/edi-fetch/internal/httputil"
	"github.com/pdiddy/edi-fetch/pkg/types"
)

// Defaults for FetchConfig fields left zero.
const (
	DefaultBaseURL         = "https://pasta.lternet.edu"
	DefaultUserAgent       = "edi-fetch/0.1"
	DefaultResolveTimeout  = 60 * time.Second
	DefaultDownloadTimeout = 300 * time.Second
	DefaultChunkSize       = 1 << 20
)

// Client issues PASTA requests for a single repository host.
type Client struct {
	http   *http.Client
	cfg    types.FetchConfig
	logger *log.Logger
}

// New returns a Client for cfg, filling unset fields with defaults.
// A nil logger discards all log output.
func New(cfg types.FetchConfig, logger *log.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.ResolveTimeout == 0 {
		cfg.ResolveTimeout = DefaultResolveTimeout
	}
	if cfg.DownloadTimeout == 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		http:   httputil.NewClient(),
		cfg:    cfg,
		logger: logger,
	}
}

// BaseURL returns the repository endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// do sends a request to base+path and returns the response once its status
// has been checked. timeout bounds connecting, the response headers, and
// each body read; see httputil.DoWithIdleTimeout. The caller must close the body.
func (c *Client) do(ctx context.Context, method, path string, timeout time.Duration) (*http.Response, error) {
	url := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	c.logger.Debug("request", "method", method, "url", url, "timeout", timeout)
	resp, err := httputil.DoWithIdleTimeout(c.http, req, timeout)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	c.logger.Debug("response", "method", method, "url", url, "status", resp.StatusCode)

	if err := httputil.CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// readText performs a request bounded by ResolveTimeout and returns the
// response body as text.
func (c *Client) readText(ctx context.Context, method, path string) (string, error) {
	resp, err := c.do(ctx, method, path, c.cfg.ResolveTimeout)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", path, err)
	}
	return string(body), nil
}

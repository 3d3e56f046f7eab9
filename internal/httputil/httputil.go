// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client and status handling shared by
// the PASTA calls.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response body is kept in an HTTPError.
const maxErrorBody = 4 << 10

// maxRedirects matches the net/http default.
const maxRedirects = 10

var (
	// ErrHTTPStatus indicates a request completed with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrCrossHostRedirect indicates the server redirected to a different host.
	ErrCrossHostRedirect = errors.New("redirect to a different host refused")

	// ErrIdleTimeout indicates a request made no progress within its timeout.
	ErrIdleTimeout = errors.New("no progress within timeout")
)

// HTTPError reports a response with a non-success status code.
// It wraps ErrHTTPStatus so callers can use errors.Is for classification.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d from %s %s", e.StatusCode, e.Method, e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap returns ErrHTTPStatus.
func (e *HTTPError) Unwrap() error { return ErrHTTPStatus }

// DoWithIdleTimeout sends req and cancels it when connecting and receiving
// the response headers takes longer than d, or when any later body read
// makes no progress for d. A body that keeps arriving is never cut off,
// however long the whole transfer takes. Closing the body releases the timer.
func DoWithIdleTimeout(client *http.Client, req *http.Request, d time.Duration) (*http.Response, error) {
	ctx, cancel := context.WithCancelCause(req.Context())
	timer := time.AfterFunc(d, func() {
		cancel(fmt.Errorf("%w (%s)", ErrIdleTimeout, d))
	})
	stop := func() {
		timer.Stop()
		cancel(context.Canceled)
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		err = idleCause(ctx, err)
		stop()
		return nil, err
	}
	timer.Reset(d)
	resp.Body = &idleBody{ReadCloser: resp.Body, ctx: ctx, timer: timer, d: d, stop: stop}
	return resp, nil
}

// idleBody resets the idle timer after every read that returns data.
type idleBody struct {
	io.ReadCloser
	ctx   context.Context
	timer *time.Timer
	d     time.Duration
	stop  func()
}

func (b *idleBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.timer.Reset(b.d)
	}
	if err != nil && err != io.EOF {
		err = idleCause(b.ctx, err)
	}
	return n, err
}

func (b *idleBody) Close() error {
	err := b.ReadCloser.Close()
	b.stop()
	return err
}

// idleCause attaches ErrIdleTimeout to err when the idle timer cancelled ctx.
func idleCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrIdleTimeout) {
		return fmt.Errorf("%w: %w", cause, err)
	}
	return err
}

// NewClient returns an HTTP client that follows redirects only while they
// stay on the host (and port) of the original request. Timeouts are applied
// per request by DoWithIdleTimeout.
func NewClient() *http.Client {
	return &http.Client{CheckRedirect: sameHostRedirect}
}

func sameHostRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if origin := via[0].URL; !strings.EqualFold(req.URL.Host, origin.Host) {
		return fmt.Errorf("%w: %s -> %s", ErrCrossHostRedirect, origin.Host, req.URL.Host)
	}
	return nil
}

// CheckStatus returns nil for 2xx responses. Otherwise it reads up to
// maxErrorBody bytes of the body and returns an *HTTPError. The caller
// still owns resp.Body and must close it.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	e := &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = redact(resp.Request.URL)
	}
	return e
}

// redact drops userinfo so credentials never land in error messages.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}

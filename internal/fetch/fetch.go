// Package fetch is the HTTP leg of the resolver (C6): a retryablehttp
// client, pooled via go-cleanhttp, plus a progress-counting reader. Adapted
// from the teacher's internal/download/manager.go client construction.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/wrenfield/pickaxe/internal/tasks"
)

// Client performs retrying, pooled HTTP GETs for every Remote source the
// resolver fetches.
type Client struct {
	http *retryablehttp.Client
}

// New builds a Client with sane defaults: three retries with exponential
// backoff over a pooled transport, silent by default (no retryablehttp
// logging noise unless the caller sets one via SetLogger).
func New() *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	return &Client{http: rc}
}

// SetLogger installs a retryablehttp-compatible logger (e.g. for wiring
// into the driver's own logging).
func (c *Client) SetLogger(l retryablehttp.LeveledLogger) {
	c.http.Logger = l
}

// Get issues a GET request and returns the raw *http.Response; the caller
// is responsible for closing Body. A non-2xx response the client does not
// retry (such as a 404) is returned as a *StatusError; a status the client
// retries (5xx, 429) that persists through every retry is returned as the
// retry client's own give-up error, not as a *StatusError.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request for %s: %w", url, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: GET %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// StatusError is a Network-kind error (spec §7): a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s: unexpected status %d", e.URL, e.StatusCode)
}

// ProgressReader wraps an io.Reader, tracking bytes read so far via an
// atomic counter and invoking OnProgress (if set) after every read. If Ctx
// is set, Read blocks between chunks while the owning task is Paused
// (tasks.WaitIfPaused), so a large download actually halts mid-transfer
// instead of merely racing to completion unreported.
type ProgressReader struct {
	Inner      interface{ Read([]byte) (int, error) }
	Total      int64
	Ctx        context.Context
	read       int64
	OnProgress func(read, total int64)
}

func NewProgressReader(ctx context.Context, inner interface{ Read([]byte) (int, error) }, total int64, onProgress func(read, total int64)) *ProgressReader {
	return &ProgressReader{Inner: inner, Total: total, Ctx: ctx, OnProgress: onProgress}
}

func (r *ProgressReader) Read(p []byte) (int, error) {
	if r.Ctx != nil {
		if err := tasks.WaitIfPaused(r.Ctx); err != nil {
			return 0, err
		}
	}
	n, err := r.Inner.Read(p)
	if n > 0 {
		cur := atomic.AddInt64(&r.read, int64(n))
		if r.OnProgress != nil {
			r.OnProgress(cur, r.Total)
		}
	}
	return n, err
}

// BytesRead returns the current progress count.
func (r *ProgressReader) BytesRead() int64 {
	return atomic.LoadInt64(&r.read)
}

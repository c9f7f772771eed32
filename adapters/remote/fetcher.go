package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"maridash/domain/table"
	"maridash/internal"
	"maridash/internal/errors"
)

// Fetcher reads images and CSV tables from a static HTTP file host
type Fetcher struct {
	httpClient    *http.Client
	timeout       time.Duration
	maxTableBytes int64
	logger        *internal.Logger
}

// Option configures Fetcher behavior
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// client, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithMaxTableBytes caps how much of a CSV body is read
func WithMaxTableBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxTableBytes = n
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(l *internal.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a fetcher with a 10s timeout and an 8 MiB table cap
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		maxTableBytes: 8 << 20,
		logger:        internal.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout > 0 && f.httpClient.Timeout != f.timeout {
		client := *f.httpClient
		client.Timeout = f.timeout
		f.httpClient = &client
	}
	return f
}

// ProbeImage issues a HEAD request, retrying once as GET when the host does
// not allow HEAD. Any 2xx counts as present.
func (f *Fetcher) ProbeImage(ctx context.Context, url string) error {
	resp, err := f.do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		f.logger.Debug("HEAD not allowed for %s, falling back to GET", url)
		resp, err = f.do(ctx, http.MethodGet, url)
		if err != nil {
			return err
		}
		// Body is never read; closing aborts the transfer.
		resp.Body.Close()
	}

	return checkStatus(resp, url)
}

// FetchTable downloads url and parses it as a CSV table
func (f *Fetcher) FetchTable(ctx context.Context, url string) (*table.Table, error) {
	resp, err := f.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxTableBytes+1))
	if err != nil {
		return nil, errors.ExternalServiceError("artifact host", fmt.Errorf("read %s: %w", url, err))
	}
	if int64(len(body)) > f.maxTableBytes {
		return nil, errors.MalformedData(fmt.Sprintf("table %s exceeds %d bytes", url, f.maxTableBytes), nil)
	}

	tbl, err := table.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, errors.MalformedData(fmt.Sprintf("table %s", url), err)
	}
	return tbl, nil
}

func (f *Fetcher) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.InvalidInput(err.Error()), "build request for %s", url)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("artifact host", err)
	}
	f.logger.Debug("%s %s -> %d in %s", method, url, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errors.Wrapf(errors.NotFound("artifact"), "%s returned status %d", url, resp.StatusCode)
}

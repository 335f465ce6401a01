// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bucket checks that resolved storage URLs point at objects that
// exist in the public document bucket.
package bucket

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultBaseDelay = 2 * time.Second
	defaultWorkers   = 8
)

// Checker issues HEAD requests against object URLs.
type Checker struct {
	client     *http.Client
	maxRetries int
	baseDelay  time.Duration
	log        *zap.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient replaces the default client (30 s timeout). A nil client
// is ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		if c != nil {
			ch.client = c
		}
	}
}

// WithRetry sets the retry budget and base backoff for throttled requests.
// maxRetries 0 disables retries and a negative value keeps the default (5).
// A non-positive baseDelay keeps the default (2 s).
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(ch *Checker) {
		ch.maxRetries = maxRetries
		if baseDelay > 0 {
			ch.baseDelay = baseDelay
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(ch *Checker) {
		if log != nil {
			ch.log = log
		}
	}
}

// NewChecker returns a Checker configured by opts.
func NewChecker(opts ...Option) *Checker {
	ch := &Checker{
		client:     &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(ch)
	}
	return ch
}

// Exists reports whether url answers a HEAD request with 2xx. 404 and 403
// mean missing; S3 answers 403 for absent keys when listing is not public.
// Other statuses are errors.
func (ch *Checker) Exists(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, eris.Wrapf(err, "bucket: build request for %s", url)
	}

	resp, err := doWithRetry(ctx, ch.client, req, ch.maxRetries, ch.baseDelay, ch.log)
	if err != nil {
		return false, eris.Wrapf(err, "bucket: HEAD %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, eris.Errorf("bucket: HEAD %s: unexpected status %s", url, resp.Status)
	}
}

// Result is the outcome of checking one URL.
type Result struct {
	URL    string
	Exists bool
	Err    error
}

// CheckAll checks urls with up to workers requests in flight and returns
// one Result per URL in input order. Errors are reported per URL; only
// cancellation of ctx stops the run early.
func (ch *Checker) CheckAll(ctx context.Context, urls []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, url := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := ch.Exists(gctx, url)
			results[i] = Result{URL: url, Exists: ok, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, eris.Wrap(err, "bucket: check cancelled")
	}
	return results, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bucket

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultMaxRetries = 5

// retryable reports responses S3 uses to ask clients to back off:
// 429 Too Many Requests and 503 Slow Down.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// doWithRetry executes req and retries throttled responses with exponential
// backoff starting at baseDelay: baseDelay, 2x, 4x, and so on.
//
// A negative maxRetries selects the default (5); 0 disables retries. Throttled response bodies are
// drained and closed before sleeping. If the context is cancelled during a
// backoff wait ctx.Err() is returned. After exhausting retries the last
// throttled response is returned so the caller can inspect it.
func doWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, baseDelay time.Duration, log *zap.Logger) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := baseDelay << attempt
		log.Debug("throttled, retrying",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

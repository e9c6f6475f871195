// Package httpretry wraps an *http.Client with a bounded retry discipline:
// transient failures (connection errors, 5xx) are retried a bounded number of
// times with backoff; anything else is returned immediately for the caller to
// classify.
package httpretry

import (
	"context"
	"math"
	"net/http"
	"time"
)

// Client retries idempotent GET/HEAD requests.
type Client struct {
	HTTP       *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

// New builds a Client with a sane default timeout and retry budget.
func New() *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
		BaseDelay:  200 * time.Millisecond,
	}
}

// Do issues req, retrying on connection errors and 5xx responses.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(req.Context(), c.BaseDelay*time.Duration(math.Pow(2, float64(attempt-1)))); err != nil {
				return nil, err
			}
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = &statusError{Code: resp.StatusCode}
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type statusError struct {
	Code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.Code)
}

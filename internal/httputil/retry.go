// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the search client and
// the relevance evaluators: bounded retry on HTTP 429 and request pacing.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryAfter caps a server-provided Retry-After value.
const maxRetryAfter = 30 * time.Second

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests). The wait honors a Retry-After header given in seconds and
// otherwise doubles from RetryBaseDelay each attempt.
//
// maxRetries <= 0 disables retrying. On each 429 the response body is
// drained and closed before waiting. If the context is cancelled during a
// wait the function returns ctx.Err(). After exhausting retries the last
// 429 response is returned so the caller can inspect it. Request bodies
// are replayed through req.GetBody on each retry.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = body
		}

		resp, err := client.Do(r)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		if wait <= 0 {
			wait = RetryBaseDelay << attempt
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryAfter parses a Retry-After header in delta-seconds form. HTTP-date
// values and garbage return 0.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}

// RetryClient adapts DoWithRetry to the Do method expected by SDK clients
// that accept an injected HTTP doer.
type RetryClient struct {
	Client     *http.Client
	MaxRetries int

	// UserAgent, when set, replaces the request's User-Agent header.
	UserAgent string
}

// Do sends req with retry on HTTP 429, using the request's context.
func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return DoWithRetry(req.Context(), client, req, c.MaxRetries)
}

// Pacer spaces outgoing requests with a token bucket. A nil Pacer, or one
// built with a non-positive rate, never waits.
type Pacer struct {
	lim *rate.Limiter
}

// NewPacer allows perSecond requests per second with the given burst.
func NewPacer(perSecond float64, burst int) *Pacer {
	if perSecond <= 0 {
		return &Pacer{}
	}
	if burst < 1 {
		burst = 1
	}
	return &Pacer{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.lim == nil {
		return nil
	}
	return p.lim.Wait(ctx)
}

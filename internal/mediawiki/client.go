// Package mediawiki is the HTTP transport shared by the Wikipedia and
// Wikidata clients. Both expose the MediaWiki action API (api.php), which is
// queried with GET and answers with JSON.
package mediawiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flexiodata/functions-wikipedia/internal/debug"
	"github.com/flexiodata/functions-wikipedia/internal/lookup"
)

const (
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries = 3

	// RetryDelay is the first backoff interval; it doubles on each retry.
	RetryDelay = 300 * time.Millisecond

	// DefaultUserAgent identifies the client to Wikimedia, which rejects
	// requests without one.
	DefaultUserAgent = "wikienrich/1.0 (https://github.com/flexiodata/functions-wikipedia)"

	// maxBodySize caps how much of a response is read.
	maxBodySize = 16 << 20
)

// Client issues GET requests against one api.php endpoint.
type Client struct {
	Endpoint   string
	UserAgent  string
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// NewClient creates a client for the given api.php endpoint with the
// default timeout and retry policy.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		UserAgent:  DefaultUserAgent,
		MaxRetries: MaxRetries,
		RetryDelay: RetryDelay,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithHTTPClient returns a copy of the client that uses httpClient.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	cp := *c
	cp.HTTPClient = httpClient
	return &cp
}

// WithUserAgent returns a copy of the client that sends userAgent.
func (c *Client) WithUserAgent(userAgent string) *Client {
	cp := *c
	cp.UserAgent = userAgent
	return &cp
}

// WithRetry returns a copy of the client with a different retry policy.
// maxRetries of 0 disables retrying.
func (c *Client) WithRetry(maxRetries int, delay time.Duration) *Client {
	cp := *c
	cp.MaxRetries = maxRetries
	cp.RetryDelay = delay
	return &cp
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %s (status %d)", e.Body, e.StatusCode)
}

// Retryable reports whether the status is one the transport retries.
func (e *StatusError) Retryable() bool {
	return IsRetryableStatus(e.StatusCode)
}

// IsRetryableStatus reports whether an HTTP status is treated as transient:
// 429, 500, 502, 503 and 504.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Get sends params (format=json is added) to the endpoint and returns the
// response body. Transient statuses are retried with exponential backoff;
// network errors and other statuses fail immediately.
func (c *Client) Get(ctx context.Context, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("format", "json")
	reqURL := c.Endpoint + "?" + q.Encode()

	var body []byte
	attempt := 0
	op := func() error {
		attempt++
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		httpReq.Header.Set("Accept", "application/json")
		if c.UserAgent != "" {
			httpReq.Header.Set("User-Agent", c.UserAgent)
		}

		debug.Logf("Debug: GET %s (attempt %d/%d)\n", reqURL, attempt, c.MaxRetries+1)
		resp, err := c.HTTPClient.Do(httpReq)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("request failed: %w", err))
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response: %w", err))
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
			if statusErr.Retryable() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if !lookup.Valid(respBody) {
			return backoff.Permanent(fmt.Errorf("failed to parse response: invalid JSON (body: %.200s)", string(respBody)))
		}

		body = respBody
		return nil
	}

	notify := func(err error, delay time.Duration) {
		debug.Logf("Debug: %v; retrying in %v\n", err, delay)
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Retryable() {
			return nil, fmt.Errorf("max retries (%d) exceeded: %w", c.MaxRetries, err)
		}
		return nil, err
	}
	return body, nil
}

// policy builds the backoff schedule: RetryDelay, 2x, 4x, ... for at most
// MaxRetries retries, without jitter.
func (c *Client) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.RetryDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Minute
	exp.MaxElapsedTime = 0

	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

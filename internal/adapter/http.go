package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetHTML performs a GET request and returns the response body as text
	GetHTML(ctx context.Context, url string) (string, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a new real HTTP client. The user agent is sent
// on every request; the upstream site silently blocks default Go
// clients, so a realistic browser identity is required.
func NewHTTPClient(timeout time.Duration, userAgent string) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// GetHTML performs a GET request and returns the body as text.
// Network errors and 429 responses are retried with exponential
// backoff; other non-2xx statuses are permanent failures.
func (c *RealHTTPClient) GetHTML(ctx context.Context, url string) (string, error) {
	var respBody []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors and timeouts are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("url", url))
			return fmt.Errorf("rate limited (429), retrying")
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return backoff.Permanent(fmt.Errorf("unexpected status code %d", resp.StatusCode))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 1 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("request failed after retries: %w", err)
	}

	return string(respBody), nil
}

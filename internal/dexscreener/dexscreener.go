// Package dexscreener is the single point of contact with the DexScreener
// HTTP API. It paces outbound requests, normalizes the upstream's uneven
// response shapes and exposes typed operations over pairs, token profiles,
// boosts and orders.
package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL            = "https://api.dexscreener.com"
	DefaultMinRequestInterval = 100 * time.Millisecond

	requestTimeout = 10 * time.Second
	userAgent      = "dexscout/1.0"

	// MaxBatchAddresses is the upstream cap on one batched token lookup.
	MaxBatchAddresses = 30
)

// Config holds client construction settings. Zero values fall back to the
// public production endpoint and the default request interval.
type Config struct {
	BaseURL string

	// MinRequestInterval is the minimum gap between any two outbound
	// requests. This is one global throttle shared by every operation on
	// the client, not a per-endpoint budget: DexScreener publishes 300/min
	// for the dex endpoints and 60/min for profile/boost endpoints, and
	// this pacing approximates neither. It only keeps bursts off the wire.
	MinRequestInterval time.Duration

	// HTTPClient overrides the default 10s-timeout client. Used in tests.
	HTTPClient *http.Client
}

// Client talks to the DexScreener API. All operations take a context, never
// panic and return errors whose messages are fit for end-user display.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// New builds a Client from cfg. The limiter is created with burst 1 so the
// configured interval is a hard floor between consecutive requests.
func New(cfg Config, logger *logrus.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	interval := cfg.MinRequestInterval
	if interval <= 0 {
		interval = DefaultMinRequestInterval
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		logger:     logger,
	}
}

// Close releases idle upstream connections. The client keeps no other
// resources open, so this exists mostly for lifecycle symmetry.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// get performs one paced GET against path and returns the raw body.
// fallback names the operation in error messages when the upstream gives
// us nothing better.
func (c *Client) get(ctx context.Context, path string, query url.Values, fallback string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debugf("[dexscreener] GET %s", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fallback, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warnf("[dexscreener] GET %s returned status %d", path, resp.StatusCode)
		if msg := upstreamError(body); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("%s: status %d", fallback, resp.StatusCode)
	}

	return body, nil
}

// getJSON runs get and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, fallback string, out any) error {
	body, err := c.get(ctx, path, query, fallback)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	return nil
}

// upstreamError pulls a human-readable message out of an error body.
// DexScreener is not consistent about the key it uses.
func upstreamError(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Err     string `json:"err"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Error != "":
		return payload.Error
	case payload.Message != "":
		return payload.Message
	case payload.Err != "":
		return payload.Err
	}
	return ""
}

// decodeList decodes a body that is either a JSON array of T or one bare T.
// The profile and boost listings switch between the two shapes, so the
// ambiguity is swallowed here and a list always comes out.
func decodeList[T any](body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var single T
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}

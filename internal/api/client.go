// Package api is the client for the MANA2 REST backend and the chat service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/mana2/mana-cli/internal/config"
	"github.com/mana2/mana-cli/internal/events"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/session"
)

const maxBodyBytes = 4 << 20

type Client struct {
	cfg     *config.Config
	http    *http.Client
	session session.Store
	bus     *events.Bus
	limiter *rate.Limiter
	cache   *cache.Cache
	fanout  int
	now     func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock sets the clock used to check token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLimiter replaces the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New builds a client from cfg. creds holds the bearer token; bus may be
// nil when nobody listens for session events.
func New(cfg *config.Config, creds session.Store, bus *events.Bus, opts ...Option) *Client {
	limit := rate.Inf
	if cfg.API.RateLimit > 0 {
		limit = rate.Limit(cfg.API.RateLimit)
	}
	burst := max(cfg.API.RateBurst, 1)

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.API.Timeout},
		session: creds,
		bus:     bus,
		limiter: rate.NewLimiter(limit, burst),
		fanout:  max(cfg.API.Fanout, 1),
		now:     time.Now,
	}
	if cfg.API.CacheTTL > 0 {
		c.cache = cache.New(cfg.API.CacheTTL, 2*cfg.API.CacheTTL)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InvalidateCache drops every cached catalog response.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// Ping reports whether base answers HTTP at all. Any status counts as
// reachable; only transport failures are returned.
func (c *Client) Ping(ctx context.Context, base string) (time.Duration, error) {
	start := time.Now()
	if _, _, err := c.send(ctx, http.MethodGet, base, nil, nil); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// send performs a single request. Only transport failures are returned as
// errors; the caller interprets the status code.
func (c *Client) send(ctx context.Context, method, url string, body any, creds *session.Credentials) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		req.Header.Set("Authorization", creds.Authorization())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("Request failed", "method", method, "url", url, "error", err)
		return 0, nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, &ConnectionError{Err: err}
	}

	logger.Debug("API request", "method", method, "url", url, "status", resp.StatusCode, "elapsed", time.Since(start))
	return resp.StatusCode, data, nil
}

// do sends a JSON request, maps failures onto the error taxonomy and
// decodes a successful body into out (when non-nil). A rejected token
// ends the session.
func (c *Client) do(ctx context.Context, method, url string, body, out any, auth bool) (int, error) {
	return c.call(ctx, method, url, body, out, auth, auth)
}

// call is do with the session expiry made optional. Secondary requests,
// such as per-row lookups, pass expireOnReject=false so one rejected row
// does not log the user out.
func (c *Client) call(ctx context.Context, method, url string, body, out any, auth, expireOnReject bool) (int, error) {
	var creds *session.Credentials
	if auth {
		loaded, err := c.session.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return 0, ErrNotAuthenticated
			}
			return 0, fmt.Errorf("failed to load session: %w", err)
		}
		// a token past its exp is dropped without a round trip
		if loaded.Expired(c.now()) {
			if expireOnReject {
				c.expire(loaded.UserID)
			}
			return 0, &AuthError{Status: http.StatusUnauthorized}
		}
		creds = &loaded
	}

	status, data, err := c.send(ctx, method, url, body, creds)
	if err != nil {
		return status, err
	}

	if status >= 400 {
		apiErr := classify(status, data)
		if auth && expireOnReject && errors.Is(apiErr, ErrUnauthorized) {
			c.expire(creds.UserID)
		}
		logger.Debug("API error", "method", method, "url", url, "status", status, "body", string(data))
		return status, apiErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return status, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return status, nil
}

// expire drops the stored credential after the backend rejected it.
func (c *Client) expire(userID int) {
	if err := c.session.Clear(); err != nil {
		logger.Warn("Failed to clear expired session", "error", err)
	}
	c.bus.PublishLoggedOut(events.UserLoggedOut{UserID: userID, Reason: events.LogoutExpired})
}

func (c *Client) get(ctx context.Context, url string, out any, auth bool) error {
	_, err := c.do(ctx, http.MethodGet, url, nil, out, auth)
	return err
}

func (c *Client) post(ctx context.Context, url string, body, out any, auth bool) error {
	_, err := c.do(ctx, http.MethodPost, url, body, out, auth)
	return err
}

// getCached serves GET responses from the in-memory cache when fresh.
func (c *Client) getCached(ctx context.Context, url string, out any) error {
	if c.cache != nil {
		if raw, found := c.cache.Get(url); found {
			logger.Debug("Cache hit", "url", url)
			return json.Unmarshal(raw.([]byte), out)
		}
	}

	status, data, err := c.send(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return err
	}
	if status >= 400 {
		return classify(status, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(url, data, cache.DefaultExpiration)
	}
	return nil
}

package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Response is the minimal view of an upstream answer the collectors need.
type Response struct {
	StatusCode int
	Body       []byte
}

// Config holds HTTP client configuration.
type Config struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// CacheTTL enables response caching when positive. The Sénat source's
	// prepare phase relies on this to warm the cache before the real fetch.
	CacheTTL time.Duration
}

// Client wraps a pooled http.Client with retries on transport errors and an
// optional TTL response cache. HTTP error statuses are returned to the
// caller, not retried: their meaning is context-dependent.
type Client struct {
	httpClient     *http.Client
	cache          *gocache.Cache
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	var responseCache *gocache.Cache
	if cfg.CacheTTL > 0 {
		responseCache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:          responseCache,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}
}

// CachingEnabled reports whether responses are cached between calls.
func (c *Client) CachingEnabled() bool {
	return c.cache != nil
}

func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	if c.cache != nil {
		if cached, found := c.cache.Get(url); found {
			return cached.(*Response), nil
		}
	}

	var resp *Response
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err = c.doRequest(ctx, url)
		if err == nil {
			break
		}

		if attempt == c.maxAttempts {
			return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"url", url,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if c.cache != nil && resp.StatusCode == http.StatusOK {
		c.cache.Set(url, resp, gocache.DefaultExpiration)
	}

	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "AmendementFetcher/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

// Package steam provides a pooled client for the Steam Web and storefront APIs
package steam

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/platform/logger"
)

const (
	apiBaseDefault     = "https://api.steampowered.com"
	storeBaseDefault   = "https://store.steampowered.com"
	defaultUA          = "playerpulse-collector"
	defaultTimeout     = 30 * time.Second
	defaultConnTimeout = 10 * time.Second
	maxBodyBytes       = 4 << 20
)

// Options configures the Client
type Options struct {
	APIBaseURL   string
	StoreBaseURL string
	UserAgent    string

	// APIKey is the Steam Web API key injected into every api.steampowered.com call
	APIKey string

	// Timeout bounds the whole request, ConnTimeout just the dial
	Timeout     time.Duration
	ConnTimeout time.Duration

	// CountryCode and Language shape storefront responses (prices, descriptions)
	CountryCode string
	Language    string
}

// Client is a minimal Steam client with connection pooling and typed decoding
// it never retries; callers own retry policy
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.APIBaseURL == "" {
		o.APIBaseURL = apiBaseDefault
	}
	if o.StoreBaseURL == "" {
		o.StoreBaseURL = storeBaseDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.ConnTimeout <= 0 {
		o.ConnTimeout = defaultConnTimeout
	}
	if o.CountryCode == "" {
		o.CountryCode = "pl"
	}
	if o.Language == "" {
		o.Language = "english"
	}
	return &Client{
		http: &http.Client{
			Timeout: o.Timeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: o.ConnTimeout}).DialContext,
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts: o,
		log:  *logger.Named("steam"),
	}
}

// getJSON issues a GET against base+path?query and decodes the body into out
// 404 maps to perr.ErrNotFound, 5xx and transport errors to Unavailable
func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, out any) error {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "steam new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "steam request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("steam http response")

	switch {
	case resp.StatusCode == http.StatusOK:
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "steam read body failed")
		}
		if err := json.Unmarshal(b, out); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "steam decode failed")
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return perr.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return perr.Newf(perr.ErrorCodeTooManyRequests, "steam rate limited")
	case resp.StatusCode >= 500:
		return perr.Newf(perr.ErrorCodeUnavailable, "steam server error %d", resp.StatusCode)
	default:
		// other 4xx mean the request shape was rejected; treat as no data
		return perr.ErrNotFound
	}
}

// apiQuery returns the base query values for api.steampowered.com calls
func (c *Client) apiQuery() url.Values {
	q := url.Values{}
	if c.opts.APIKey != "" {
		q.Set("key", c.opts.APIKey)
	}
	return q
}

// Package deals provides an optional client for a price-deal aggregator
// the service works without it; an unconfigured client returns empty results
package deals

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "playerpulse/internal/platform/errors"
	"playerpulse/internal/platform/logger"
)

const baseURLDefault = "https://api.isthereanydeal.com"

// Deal is one store offer for a game
type Deal struct {
	Shop     string  `json:"shop"`
	Price    float64 `json:"price"`
	Regular  float64 `json:"regular"`
	Cut      int     `json:"cut"`
	URL      string  `json:"url"`
	Currency string  `json:"currency"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the aggregator; a zero APIKey disables it
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("deals"),
	}
}

// Enabled reports whether the aggregator is configured
func (c *Client) Enabled() bool { return c != nil && c.opts.APIKey != "" }

// DealsForApp returns current offers for a Steam app, empty when disabled
func (c *Client) DealsForApp(ctx context.Context, appID int64) ([]Deal, error) {
	if !c.Enabled() {
		return nil, nil
	}
	q := url.Values{}
	q.Set("key", c.opts.APIKey)
	q.Set("appid", strconv.FormatInt(appID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/games/prices/v3?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "deals new request failed")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "deals request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var out []Deal
		b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "deals read body failed")
		}
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "deals decode failed")
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 500:
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "deals server error %d", resp.StatusCode)
	default:
		c.log.Warn().Int("status", resp.StatusCode).Msg("deals unexpected status")
		return nil, nil
	}
}

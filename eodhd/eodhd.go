// Package eodhd fetches latest prices from the eodhd.com real-time API.
package eodhd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/etnz/costbasis/internal/httpjson"
	"github.com/shopspring/decimal"
)

// EnvAPIKey is the environment variable read for the API key when none is configured.
const EnvAPIKey = "EODHD_API_KEY"

// DemoKey is eodhd's public key, limited to a few tickers (AAPL.US, MCD.US ...).
const DemoKey = "demo"

const (
	defaultBaseURL  = "https://eodhd.com/api"
	defaultExchange = "US"
	// DefaultTTL is how long a quote is reused from the disk cache.
	DefaultTTL = 15 * time.Minute
)

// Client fetches latest prices from eodhd.com. It implements costbasis.PriceFetcher.
type Client struct {
	apiKey   string
	exchange string
	baseURL  string
	cacheDir string
	ttl      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithExchange sets the eodhd exchange code appended to symbols without one (default "US").
func WithExchange(code string) Option { return func(c *Client) { c.exchange = code } }

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithCache sets the cache folder and time to live of cached quotes. A zero ttl disables the cache.
func WithCache(dir string, ttl time.Duration) Option {
	return func(c *Client) { c.cacheDir, c.ttl = dir, ttl }
}

// New returns a Client for 'apiKey', or for the EODHD_API_KEY environment variable if empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, errors.New("EODHD API key is not set, use -eodhd-api-key flag or " + EnvAPIKey + " environment variable")
	}
	c := &Client{
		apiKey:   apiKey,
		exchange: defaultExchange,
		baseURL:  defaultBaseURL,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ticker returns the eodhd ticker "SYMBOL.EXCHANGE" for a symbol.
func (c *Client) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(symbol, ".") || c.exchange == "" {
		return symbol
	}
	return symbol + "." + c.exchange
}

// quote is the payload of the real-time endpoint.
//
//	{
//	  "code": "AAPL.US",
//	  "timestamp": 1760644800,
//	  "open": 248.25,
//	  "close": 247.45,
//	  "previousClose": 249.34,
//	  ...
//	}
//
// Unknown tickers get "NA" values instead of numbers.
type quote struct {
	Code          string          `json:"code"`
	Close         json.RawMessage `json:"close"`
	PreviousClose json.RawMessage `json:"previousClose"`
}

// LatestPrice returns the latest traded price of 'symbol'.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	ticker := c.ticker(symbol)
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	var q quote
	if err := httpjson.Get(ctx, newCachingClient(c.cacheDir, c.ttl), addr, &q); err != nil {
		return decimal.Zero, fmt.Errorf("eodhd real-time %s: %w", ticker, err)
	}
	for _, raw := range []json.RawMessage{q.Close, q.PreviousClose} {
		if price, ok := parsePrice(raw); ok {
			return price, nil
		}
	}
	return decimal.Zero, fmt.Errorf("eodhd has no price for %s", ticker)
}

// parsePrice reads a positive decimal from a json number, or a string holding a number.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 {
		return decimal.Zero, false
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, false
	}
	return d, d.IsPositive()
}

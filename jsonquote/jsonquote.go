// Package jsonquote fetches latest prices from any JSON quote endpoint.
//
// The endpoint is described by a URL template where "{symbol}" is replaced by
// the symbol, and one or more JSONPath expressions selecting the price in the
// response. Paths are tried in order, the first one yielding a non zero price
// wins, so that a "last" price can fall back to a "bid" one.
package jsonquote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/costbasis/internal/httpjson"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Placeholder is replaced by the symbol in the URL template.
const Placeholder = "{symbol}"

// ErrNoPrice is returned when no path yields a usable price.
var ErrNoPrice = errors.New("no price")

// Client fetches prices from a JSON endpoint. It implements costbasis.PriceFetcher.
type Client struct {
	template string
	paths    []string
	client   *http.Client
}

// New returns a Client for the URL template and JSONPath expressions.
func New(urlTemplate string, paths ...string) (*Client, error) {
	if !strings.Contains(urlTemplate, Placeholder) {
		return nil, fmt.Errorf("quote url %q has no %s placeholder", urlTemplate, Placeholder)
	}
	if len(paths) == 0 {
		return nil, errors.New("quote path is required")
	}
	return &Client{template: urlTemplate, paths: paths, client: new(http.Client)}, nil
}

// URL returns the quote address for a symbol.
func (c *Client) URL(symbol string) string {
	return strings.ReplaceAll(c.template, Placeholder, url.PathEscape(symbol))
}

// LatestPrice returns the latest price of 'symbol'.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var jobj any
	if err := httpjson.Get(ctx, c.client, c.URL(symbol), &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	for _, path := range c.paths {
		price, err := Extract(jobj, path)
		if err != nil {
			log.Debug().Str("symbol", symbol).Str("path", path).Err(err).Msg("quote path skipped")
			continue
		}
		return price, nil
	}
	return decimal.Zero, fmt.Errorf("%w for %q at %s", ErrNoPrice, symbol, strings.Join(c.paths, ", "))
}

// Extract reads a price at 'path' in a decoded JSON document.
//
// Prices may be JSON numbers or strings, using either '.' or ',' as decimal
// separator. A zero price is an error: some endpoints report an empty quote
// that way.
func Extract(jobj any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath may return a list of one answer or the answer itself: keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Zero, fmt.Errorf("%q matches nothing", path)
		}
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case float64:
		price = decimal.NewFromFloat(v)
	case json.Number:
		if price, err = decimal.NewFromString(v.String()); err != nil {
			return decimal.Zero, fmt.Errorf("invalid number %q: %w", v, err)
		}
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		if price, err = decimal.NewFromString(s); err != nil {
			return decimal.Zero, fmt.Errorf("value is an invalid string %q: %w", v, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("%q is neither a number nor a string: %v", path, jval)
	}
	if price.IsZero() {
		return decimal.Zero, fmt.Errorf("%q is zero", path)
	}
	return price, nil
}

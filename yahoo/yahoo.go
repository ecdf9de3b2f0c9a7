// Package yahoo fetches latest prices from Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
)

// quoteFunc returns the latest price of a Yahoo symbol.
type quoteFunc func(symbol string) (float64, error)

// Client fetches latest prices from Yahoo Finance. It implements costbasis.PriceFetcher.
type Client struct {
	quote quoteFunc
}

// New returns a Client using the go-yfinance library.
func New() *Client { return &Client{quote: latestQuote} }

// Symbol converts a broker symbol into Yahoo's notation: share classes use a
// dash instead of a dot ("BRK.B" is "BRK-B").
func Symbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.LastIndex(symbol, "."); i > 0 && len(symbol)-i == 2 {
		// single letter suffix is a share class, longer ones are exchanges (e.g. ".TO").
		return symbol[:i] + "-" + symbol[i+1:]
	}
	return symbol
}

// LatestPrice returns the latest market price of 'symbol'.
//
// go-yfinance calls are not cancellable, a cancelled ctx only stops waiting for them.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	type result struct {
		price float64
		err   error
	}
	done := make(chan result, 1)
	go func() {
		price, err := c.quote(Symbol(symbol))
		done <- result{price, err}
	}()

	select {
	case <-ctx.Done():
		return decimal.Zero, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return decimal.Zero, fmt.Errorf("yahoo quote %s: %w", symbol, r.err)
		}
		return decimal.NewFromFloat(r.price), nil
	}
}

// pickPrice returns the first positive price among the candidates.
func pickPrice(candidates ...float64) (float64, bool) {
	for _, p := range candidates {
		if p > 0 {
			return p, true
		}
	}
	return 0, false
}

// latestQuote asks Yahoo for the regular market price, falling back to pre
// and post market prices, and last to the summary info.
func latestQuote(symbol string) (float64, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	quote, qerr := t.Quote()
	if qerr == nil && quote != nil {
		if price, ok := pickPrice(quote.RegularMarketPrice, quote.PreMarketPrice, quote.PostMarketPrice); ok {
			return price, nil
		}
	}

	info, err := t.Info()
	if err == nil && info != nil {
		if price, ok := pickPrice(info.CurrentPrice, info.RegularMarketPreviousClose); ok {
			return price, nil
		}
	}
	if qerr != nil {
		return 0, qerr
	}
	if err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("no valid price for %s", symbol)
}

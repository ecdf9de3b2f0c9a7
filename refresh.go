package costbasis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the default number of concurrent price requests.
const DefaultWorkers = 4

// PriceFetcher returns the latest market price of one share of 'symbol'.
type PriceFetcher interface {
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// PriceFetcherFunc adapts a function to the PriceFetcher interface.
type PriceFetcherFunc func(ctx context.Context, symbol string) (decimal.Decimal, error)

func (f PriceFetcherFunc) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return f(ctx, symbol)
}

// FetchPrices fetches the latest price of each symbol, at most 'workers' at a time.
//
// A failed symbol is not retried: it is missing from the returned map, and
// its error is joined into the returned error. Prices of the other symbols
// are returned anyway.
func FetchPrices(ctx context.Context, symbols []string, fetcher PriceFetcher, workers int) (map[string]decimal.Decimal, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu     sync.Mutex
		prices = make(map[string]decimal.Decimal, len(symbols))
		errs   []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, symbol := range symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			price, err := fetcher.LatestPrice(ctx, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("cannot fetch latest price")
				errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
				return nil
			}
			log.Debug().Str("symbol", symbol).Stringer("price", price).Msg("latest price")
			prices[symbol] = price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// only a cancelled context gets here
		errs = append(errs, err)
	}
	return prices, errors.Join(errs...)
}

// ApplyPrices returns a copy of lots where every lot with a known price has
// its value and gain recomputed: value = quantity × price, gain = value - cost.
func ApplyPrices(lots Lots, prices map[string]decimal.Decimal) Lots {
	res := make(Lots, len(lots))
	for i, l := range lots {
		if price, ok := prices[l.Symbol]; ok {
			l.Value = l.Quantity.MulPrice(price, cur(l.Cost, l.Value))
			l.Gain = l.Value.Sub(l.Cost)
		}
		res[i] = l
	}
	return res
}

// Refresh updates lots with the latest price of their symbol.
// Lots whose symbol could not be fetched are left unchanged, see FetchPrices.
func Refresh(ctx context.Context, lots Lots, fetcher PriceFetcher, workers int) (Lots, error) {
	prices, err := FetchPrices(ctx, lots.Symbols(), fetcher, workers)
	return ApplyPrices(lots, prices), err
}

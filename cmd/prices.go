package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// pricesCmd holds the flags for the 'prices' subcommand.
type pricesCmd struct {
	file       string
	headerRows int
	currency   string

	fetcher costbasis.PriceFetcher // overrides the configured provider
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "latest price of every symbol of a cost basis export" }
func (*pricesCmd) Usage() string {
	return `cb prices -f <file>

  Fetches the latest price of every symbol in the cost basis CSV export,
  using the provider selected with -provider.

`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Cost basis CSV file to process (required)")
	f.StringVar(&c.file, "file", "", "alias for -f")
	f.IntVar(&c.headerRows, "header-rows", costbasis.DefaultDecodeOptions.HeaderRows, "Number of header rows to skip")
	f.StringVar(&c.currency, "currency", costbasis.DefaultCurrency, "Currency of the prices")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f flag is required")
		return subcommands.ExitUsageError
	}
	lots, err := costbasis.DecodeFile(c.file, costbasis.DecodeOptions{HeaderRows: c.headerRows, Currency: c.currency})
	if errors.Is(err, costbasis.ErrNotReadable) {
		fmt.Fprintf(stdout, "%s is not a readable file.\n", absPath(c.file))
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	fetcher := c.fetcher
	if fetcher == nil {
		if fetcher, err = NewFetcher(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error selecting price provider: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	symbols := lots.Symbols()
	prices, err := costbasis.FetchPrices(ctx, symbols, fetcher, config.Workers)
	if err != nil {
		log.Warn().Err(err).Msg("some prices could not be fetched")
	}
	for _, symbol := range symbols {
		price, ok := prices[symbol]
		if !ok {
			fmt.Fprintf(stdout, "%s\tn/a\n", symbol)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", symbol, costbasis.M(price, c.currency))
	}
	if len(symbols) > 0 && len(prices) == 0 {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

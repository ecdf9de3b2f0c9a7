package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/date"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	file       string
	symbol     bool
	noSummary  bool
	days       int
	verbose    bool
	live       bool
	markdown   bool
	output     string
	headerRows int
	currency   string

	fetcher costbasis.PriceFetcher // overrides the configured provider
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "short and long term gain/loss of a cost basis export" }
func (*reportCmd) Usage() string {
	return `cb report -f <file> [-s] [-n] [-d <days>] [-v] [-l] [-markdown] [-o <file>]

  Displays net short/long term gains/losses and total short/long term losses
  of the tax lots in a cost basis CSV export.
  A lot is short term if it was purchased less than a year ago.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Cost basis CSV file to process (required)")
	f.StringVar(&c.file, "file", "", "alias for -f")
	f.BoolVar(&c.symbol, "s", false, "Display net gain/loss by symbol and net short/long term gain/loss per symbol")
	f.BoolVar(&c.symbol, "symbol", false, "alias for -s")
	f.BoolVar(&c.noSummary, "n", false, "No summary, implies -s")
	f.BoolVar(&c.noSummary, "no-summary", false, "alias for -n")
	f.IntVar(&c.days, "d", 0, "Show results for number of days in the future")
	f.IntVar(&c.days, "days", 0, "alias for -d")
	f.BoolVar(&c.verbose, "v", false, "Display symbol descriptions")
	f.BoolVar(&c.verbose, "verbose", false, "alias for -v")
	f.BoolVar(&c.live, "l", false, "Refresh values and gains with live prices, see -provider")
	f.BoolVar(&c.live, "live", false, "alias for -l")
	f.BoolVar(&c.markdown, "markdown", false, "Render the report as markdown")
	f.StringVar(&c.output, "o", "", "Save the lots, refreshed if -l, to this CSV file")
	f.IntVar(&c.headerRows, "header-rows", costbasis.DefaultDecodeOptions.HeaderRows, "Number of header rows to skip")
	f.StringVar(&c.currency, "currency", costbasis.DefaultCurrency, "Currency of the amounts in the file")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f flag is required")
		return subcommands.ExitUsageError
	}
	if c.headerRows < 0 {
		fmt.Fprintln(os.Stderr, "-header-rows cannot be negative")
		return subcommands.ExitUsageError
	}

	lots, err := costbasis.DecodeFile(c.file, costbasis.DecodeOptions{HeaderRows: c.headerRows, Currency: c.currency})
	if errors.Is(err, costbasis.ErrNotReadable) {
		log.Debug().Err(err).Msg("cannot read cost basis file")
		fmt.Fprintf(stdout, "%s is not a readable file.\n", absPath(c.file))
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	cutoff := costbasis.Cutoff(date.Today(), c.days)
	if !c.markdown {
		fmt.Fprint(stdout, renderer.Loaded(renderer.NewReport(lots, cutoff, renderer.Options{})))
	}

	if c.live {
		fetcher := c.fetcher
		if fetcher == nil {
			if fetcher, err = NewFetcher(config); err != nil {
				fmt.Fprintf(os.Stderr, "Error selecting price provider: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		lots, err = costbasis.Refresh(ctx, lots, fetcher, config.Workers)
		if err != nil {
			// lots that could not be refreshed keep their exported value
			log.Warn().Err(err).Msg("some prices could not be refreshed")
		}
	}

	if c.output != "" {
		if err := saveLots(c.output, lots); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving lots: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	r := renderer.NewReport(lots, cutoff, renderer.Options{
		Summary:   !c.noSummary,
		PerSymbol: c.symbol || c.noSummary,
		Verbose:   c.verbose,
	})
	if c.markdown {
		printMarkdown(renderer.Markdown(r))
	} else {
		fmt.Fprint(stdout, renderer.Text(r))
	}
	return subcommands.ExitSuccess
}

// saveLots writes lots to a CSV file.
func saveLots(path string, lots costbasis.Lots) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := costbasis.EncodeLots(f, lots); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return f.Close()
}

// absPath returns the absolute path of 'path', or 'path' itself if it cannot be resolved.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

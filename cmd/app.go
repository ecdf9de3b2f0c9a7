// Package cmd implements the CLI application to analyze cost basis exports.
package cmd

import (
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&pricesCmd{}, "reports")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile    = flag.String("config", "", "Path to a costbasis.yaml configuration file")
	provider      = flag.String("provider", ProviderYahoo, "Live price provider (yahoo, eodhd, json)")
	workers       = flag.Int("workers", 4, "Number of concurrent price requests")
	eodhdAPIKey   = flag.String("eodhd-api-key", "", "EODHD API key, defaults to $EODHD_API_KEY")
	eodhdExchange = flag.String("eodhd-exchange", "US", "EODHD exchange code appended to symbols")
	quoteURL      = flag.String("quote-url", "", "JSON quote URL template, {symbol} is replaced by the symbol")
	quotePath     = flag.String("quote-path", "", "JSONPath of the price in the quote response")
	logLevel      = flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFile       = flag.String("log-file", "", "Also write logs to this file, rotated")
)

// stdout is where commands print their report.
var stdout io.Writer = os.Stdout

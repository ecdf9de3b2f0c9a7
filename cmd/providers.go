package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/eodhd"
	"github.com/etnz/costbasis/jsonquote"
	"github.com/etnz/costbasis/yahoo"
)

// Live price providers.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
	ProviderJSON  = "json"
)

// Providers lists the supported price providers.
var Providers = []string{ProviderYahoo, ProviderEODHD, ProviderJSON}

// NewFetcher returns the price fetcher selected by the configuration.
func NewFetcher(cfg *Config) (costbasis.PriceFetcher, error) {
	switch cfg.Provider {
	case ProviderYahoo:
		return yahoo.New(), nil
	case ProviderEODHD:
		c, err := eodhd.New(cfg.EODHDAPIKey,
			eodhd.WithExchange(cfg.EODHDExchange),
			eodhd.WithCache(cacheDir(), cfg.EODHDCacheTTL),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderJSON:
		paths := []string{cfg.QuotePath}
		if cfg.QuoteFallback != "" {
			paths = append(paths, cfg.QuoteFallback)
		}
		c, err := jsonquote.New(cfg.QuoteURL, paths...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown provider %q, use one of %v", cfg.Provider, Providers)
	}
}

// cacheDir is where HTTP responses are cached.
func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "costbasis")
	}
	return filepath.Join(os.TempDir(), "costbasis")
}

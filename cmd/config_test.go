package cmd

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/costbasis/eodhd"
	"github.com/etnz/costbasis/jsonquote"
	"github.com/etnz/costbasis/yahoo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// globalFlags returns a flag set with the global flags used by LoadConfig.
func globalFlags() *flag.FlagSet {
	f := flag.NewFlagSet("cb", flag.ContinueOnError)
	f.String("config", "", "")
	f.String("provider", ProviderYahoo, "")
	f.Int("workers", 4, "")
	f.String("eodhd-exchange", "US", "")
	f.String("log-level", "warn", "")
	return f
}

func TestLoadConfig_Defaults(t *testing.T) {
	f := globalFlags()
	require.NoError(t, f.Parse([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}))
	_, err := LoadConfig(f)
	assert.Error(t, err, "an explicit configuration file must exist")

	f = globalFlags()
	require.NoError(t, f.Parse(nil))
	cfg, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, ProviderYahoo, cfg.Provider)
	assert.Equal(t, eodhd.DefaultTTL, cfg.EODHDCacheTTL)
}

func TestLoadConfig_Priority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costbasis.yaml")
	yaml := "provider: eodhd\neodhd_exchange: PA\neodhd_cache_ttl: 1h\nworkers: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("COSTBASIS_WORKERS", "8")

	f := globalFlags()
	require.NoError(t, f.Parse([]string{"-config", path, "-provider", "json"}))
	cfg, err := LoadConfig(f)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Provider, "flags win")
	assert.Equal(t, 8, cfg.Workers, "environment beats the file")
	assert.Equal(t, "PA", cfg.EODHDExchange)
	assert.Equal(t, time.Hour, cfg.EODHDCacheTTL)
}

func TestLoadConfig_InvalidWorkers(t *testing.T) {
	f := globalFlags()
	require.NoError(t, f.Parse([]string{"-workers", "0"}))
	_, err := LoadConfig(f)
	assert.ErrorContains(t, err, "invalid workers")
}

func TestNewFetcher(t *testing.T) {
	t.Setenv(eodhd.EnvAPIKey, "")

	cfg := DefaultConfig()
	f, err := NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &yahoo.Client{}, f)

	cfg.Provider = ProviderEODHD
	_, err = NewFetcher(cfg)
	assert.Error(t, err, "eodhd requires an API key")
	cfg.EODHDAPIKey = "secret"
	f, err = NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &eodhd.Client{}, f)

	cfg.Provider = ProviderJSON
	_, err = NewFetcher(cfg)
	assert.Error(t, err, "json requires a quote url")
	cfg.QuoteURL = "https://example.com/quote/{symbol}"
	cfg.QuotePath = "$.last"
	f, err = NewFetcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &jsonquote.Client{}, f)

	cfg.Provider = "bloomberg"
	_, err = NewFetcher(cfg)
	assert.ErrorContains(t, err, "unknown provider")
}

func TestSetupLogging(t *testing.T) {
	oldLogger, oldLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.SetGlobalLevel(oldLevel)
	})

	cfg := DefaultConfig()
	cfg.LogLevel = "info"
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "cb.log")

	var console bytes.Buffer
	closeLog, err := setupLogging(cfg, &console)
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "VTI").Msg("refreshed")
	require.NoError(t, closeLog())

	assert.Contains(t, console.String(), "refreshed")
	assert.NotContains(t, console.String(), "hidden")
	content, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"symbol":"VTI"`)

	cfg.LogLevel = "loud"
	_, err = setupLogging(cfg, &console)
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"report", "prices", "topic"} {
		assert.Contains(t, c.Sub, name)
	}
	assert.Contains(t, c.Sub["report"].Flags, "live")
	assert.Contains(t, c.Flags, "provider")
}

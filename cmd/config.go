package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/costbasis/eodhd"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables read as configuration, e.g. COSTBASIS_PROVIDER.
const EnvPrefix = "COSTBASIS"

// Config holds the settings shared by all commands.
type Config struct {
	Provider      string        `mapstructure:"provider"`
	Workers       int           `mapstructure:"workers"`
	EODHDAPIKey   string        `mapstructure:"eodhd_api_key"`
	EODHDExchange string        `mapstructure:"eodhd_exchange"`
	EODHDCacheTTL time.Duration `mapstructure:"eodhd_cache_ttl"`
	QuoteURL      string        `mapstructure:"quote_url"`
	QuotePath     string        `mapstructure:"quote_path"`
	QuoteFallback string        `mapstructure:"quote_fallback_path"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
}

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"provider":       "provider",
	"workers":        "workers",
	"eodhd-api-key":  "eodhd_api_key",
	"eodhd-exchange": "eodhd_exchange",
	"quote-url":      "quote_url",
	"quote-path":     "quote_path",
	"log-level":      "log_level",
	"log-file":       "log_file",
}

// config is the configuration in use, set by Init.
var config = DefaultConfig()

// DefaultConfig returns the configuration used without any file, environment or flag.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderYahoo,
		Workers:       4,
		EODHDExchange: "US",
		EODHDCacheTTL: eodhd.DefaultTTL,
		LogLevel:      "warn",
	}
}

// LoadConfig reads the configuration.
//
// Sources by increasing priority: defaults, the configuration file, COSTBASIS_*
// environment variables (a .env file in the working directory is loaded first),
// and the flags of 'fs' that were explicitly set.
func LoadConfig(fs *flag.FlagSet) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	def := DefaultConfig()
	v := viper.New()
	v.SetDefault("provider", def.Provider)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("eodhd_api_key", "")
	v.SetDefault("eodhd_exchange", def.EODHDExchange)
	v.SetDefault("eodhd_cache_ttl", def.EODHDCacheTTL)
	v.SetDefault("quote_url", "")
	v.SetDefault("quote_path", "")
	v.SetDefault("quote_fallback_path", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := fs.Lookup("config"); path != nil && path.Value.String() != "" {
		v.SetConfigFile(path.Value.String())
	} else {
		v.SetConfigName("costbasis")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "costbasis"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("invalid workers %d: must be at least 1", cfg.Workers)
	}
	return cfg, nil
}

// Init loads the configuration and sets up logging. It must be called once the
// command line has been parsed. The returned function flushes the log file.
func Init(fs *flag.FlagSet) (func() error, error) {
	cfg, err := LoadConfig(fs)
	if err != nil {
		return nil, err
	}
	closer, err := setupLogging(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	config = cfg
	return closer, nil
}

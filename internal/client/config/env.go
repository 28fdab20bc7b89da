package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/tijarah/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const defaultDotEnv = ".env"

// EnvConfig mirrors Config for environment variables. noinit keeps unset
// variables nil so they do not override earlier sources.
type EnvConfig struct {
	APIBaseURL          *string        `env:"TIJARAH_API_URL, noinit"`
	RequestTimeout      *time.Duration `env:"TIJARAH_REQUEST_TIMEOUT, noinit"`
	RateLimit           *float64       `env:"TIJARAH_RATE_LIMIT, noinit"`
	RateBurst           *int           `env:"TIJARAH_RATE_BURST, noinit"`
	StoreBackend        *string        `env:"TIJARAH_STORE, noinit"`
	StorePath           *string        `env:"TIJARAH_STORE_PATH, noinit"`
	RedisAddr           *string        `env:"TIJARAH_REDIS_ADDR, noinit"`
	RedisDB             *int           `env:"TIJARAH_REDIS_DB, noinit"`
	RedisPrefix         *string        `env:"TIJARAH_REDIS_PREFIX, noinit"`
	BannedRedirectDelay *time.Duration `env:"TIJARAH_BANNED_DELAY, noinit"`
	LogLevel            *string        `env:"TIJARAH_LOG_LEVEL, noinit"`
	LogFormat           *string        `env:"TIJARAH_LOG_FORMAT, noinit"`
}

// loadDotEnv seeds the process environment from the file given with -env, or
// from ./.env when it exists. Variables already set are not overridden. A
// missing -env file panics; a missing ./.env is ignored.
func loadDotEnv() {
	path := flagx.EnvFileFlag()
	if path == "" {
		if _, err := os.Stat(defaultDotEnv); errors.Is(err, fs.ErrNotExist) {
			return
		}
		path = defaultDotEnv
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with TIJARAH_* variables read through l, or the
// process environment when l is nil. Panics on malformed values.
func parseEnv(cfg *Config, l envconfig.Lookuper) {
	if l == nil {
		l = envconfig.OsLookuper()
	}

	var ec EnvConfig
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &ec,
		Lookuper: l,
	}); err != nil {
		panic(err)
	}

	setIf(&cfg.APIBaseURL, ec.APIBaseURL)
	setIf(&cfg.RequestTimeout, ec.RequestTimeout)
	setIf(&cfg.RateLimit, ec.RateLimit)
	setIf(&cfg.RateBurst, ec.RateBurst)
	setIf(&cfg.StoreBackend, ec.StoreBackend)
	setIf(&cfg.StorePath, ec.StorePath)
	setIf(&cfg.RedisAddr, ec.RedisAddr)
	setIf(&cfg.RedisDB, ec.RedisDB)
	setIf(&cfg.RedisPrefix, ec.RedisPrefix)
	setIf(&cfg.BannedRedirectDelay, ec.BannedRedirectDelay)
	setIf(&cfg.LogLevel, ec.LogLevel)
	setIf(&cfg.LogFormat, ec.LogFormat)
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tijarah/internal/flagx"
	"github.com/dmitrijs2005/tijarah/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields are
// pointers so that keys missing from the file leave earlier values alone.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RateLimit           *float64        `json:"rate_limit"`
	RateBurst           *int            `json:"rate_burst"`
	StoreBackend        *string         `json:"store_backend"`
	StorePath           *string         `json:"store_path"`
	RedisAddr           *string         `json:"redis_addr"`
	RedisDB             *int            `json:"redis_db"`
	RedisPrefix         *string         `json:"redis_prefix"`
	BannedRedirectDelay *timex.Duration `json:"banned_redirect_delay"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file given with
// -c or -config. Without the flag nothing happens. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.RateLimit, jc.RateLimit)
	setIf(&cfg.RateBurst, jc.RateBurst)
	setIf(&cfg.StoreBackend, jc.StoreBackend)
	setIf(&cfg.StorePath, jc.StorePath)
	setIf(&cfg.RedisAddr, jc.RedisAddr)
	setIf(&cfg.RedisDB, jc.RedisDB)
	setIf(&cfg.RedisPrefix, jc.RedisPrefix)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.BannedRedirectDelay != nil {
		cfg.BannedRedirectDelay = jc.BannedRedirectDelay.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

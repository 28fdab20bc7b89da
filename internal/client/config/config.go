package config

import "time"

// Config holds runtime settings for the Tijarah CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, including the /api prefix.
//   - RequestTimeout: upper bound for a single API request.
//   - RateLimit, RateBurst: client-side request throttle (requests per second).
//   - StoreBackend: "sqlite" or "redis", where the session is persisted.
//   - StorePath: SQLite file used when StoreBackend is "sqlite".
//   - RedisAddr, RedisDB, RedisPrefix: Redis slot used when StoreBackend is "redis".
//   - BannedRedirectDelay: pause between the ban message and the banned view.
//   - LogLevel, LogFormat: see logging.Options.
type Config struct {
	APIBaseURL          string
	RequestTimeout      time.Duration
	RateLimit           float64
	RateBurst           int
	StoreBackend        string
	StorePath           string
	RedisAddr           string
	RedisDB             int
	RedisPrefix         string
	BannedRedirectDelay time.Duration
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://localhost:7064/api"
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 10
	c.RateBurst = 20
	c.StoreBackend = "sqlite"
	c.StorePath = "./data/session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisPrefix = "tijarah:"
	c.BannedRedirectDelay = 2 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file, the environment (seeded from a .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseJson(cfg)
	parseEnv(cfg, nil)
	parseFlags(cfg)
	return cfg
}

// Package config loads runtime configuration for the Tijarah CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables TIJARAH_*, optionally seeded from a .env file
//     (-env path, or ./.env when present). Already-set variables win over
//     the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-s string   SQLite session store path
//	-t int      request timeout (seconds)
//	-l string   log level
//	-c string   JSON config file
//	-env string dotenv file
//
// # JSON schema
//
// Durations use timex.Duration, so values are either strings like "15s" or
// integer nanoseconds. Missing keys keep the previous value:
//
//	{
//	  "api_base_url": "https://localhost:7064/api",
//	  "request_timeout": "15s",
//	  "rate_limit": 10,
//	  "rate_burst": 20,
//	  "store_backend": "sqlite",
//	  "store_path": "./data/session.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_prefix": "tijarah:",
//	  "banned_redirect_delay": "2s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// # Environment
//
//	TIJARAH_API_URL, TIJARAH_REQUEST_TIMEOUT, TIJARAH_RATE_LIMIT,
//	TIJARAH_RATE_BURST, TIJARAH_STORE, TIJARAH_STORE_PATH,
//	TIJARAH_REDIS_ADDR, TIJARAH_REDIS_DB, TIJARAH_REDIS_PREFIX,
//	TIJARAH_BANNED_DELAY, TIJARAH_LOG_LEVEL, TIJARAH_LOG_FORMAT
package config

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	parseEnv(cfg, envconfig.MapLookuper(map[string]string{
		"TIJARAH_API_URL":      "http://10.0.0.5:8080/api",
		"TIJARAH_STORE":        "redis",
		"TIJARAH_REDIS_DB":     "2",
		"TIJARAH_BANNED_DELAY": "3s",
		"TIJARAH_RATE_LIMIT":   "0.5",
	}))

	assert.Equal(t, "http://10.0.0.5:8080/api", cfg.APIBaseURL)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 3*time.Second, cfg.BannedRedirectDelay)
	assert.Equal(t, 0.5, cfg.RateLimit)

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout, "unset variables keep earlier values")
	assert.Equal(t, "tijarah:", cfg.RedisPrefix)
}

func TestParseEnv_Malformed(t *testing.T) {
	require.Panics(t, func() {
		parseEnv(&Config{}, envconfig.MapLookuper(map[string]string{"TIJARAH_RATE_BURST": "many"}))
	})
}

func TestLoadDotEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("TIJARAH_REDIS_PREFIX=dotenv:\nTIJARAH_LOG_FORMAT=json\n"), 0o600))

	// already-set variables win over the file
	t.Setenv("TIJARAH_LOG_FORMAT", "console")
	t.Setenv("TIJARAH_REDIS_PREFIX", "")
	require.NoError(t, os.Unsetenv("TIJARAH_REDIS_PREFIX"))

	os.Args = []string{"testbin", "-env", path}
	loadDotEnv()

	assert.Equal(t, "dotenv:", os.Getenv("TIJARAH_REDIS_PREFIX"))
	assert.Equal(t, "console", os.Getenv("TIJARAH_LOG_FORMAT"))
}

func TestLoadDotEnv_MissingDefaultIsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	os.Args = []string{"testbin"}
	require.NotPanics(t, loadDotEnv)

	os.Args = []string{"testbin", "-env", "missing.env"}
	require.Panics(t, loadDotEnv)
}

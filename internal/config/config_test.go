package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                "",
		"REDIS_URL":           "",
		"RATE_LIMIT_ENABLED":  "",
		"RATE_LIMIT_STRATEGY": "",
		"RATE_LIMIT_MAX":      "",
		"BODY_LIMIT_BYTES":    "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, RateLimitFixed, cfg.RateLimitStrategy)
	require.Equal(t, 600, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, int64(1<<20), cfg.BodyLimitBytes)
	require.False(t, cfg.RateLimitEnabled)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                 "9090",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"RATE_LIMIT_ENABLED":   "true",
		"RATE_LIMIT_STRATEGY":  "Sliding",
		"RATE_LIMIT_WINDOW":    "30s",
		"RATE_LIMIT_MAX":       "5",
		"REDIS_URL":            "redis://localhost:6379/0",
		"SHUTDOWN_TIMEOUT":     "bogus",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, RateLimitSliding, cfg.RateLimitStrategy)
	require.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	require.Equal(t, 5, cfg.RateLimitMax)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":     {"PORT": "http"},
		"strategy": {"RATE_LIMIT_STRATEGY": "leaky"},
		"negative": {"RATE_LIMIT_MAX": "-1"},
		"sliding without redis": {
			"RATE_LIMIT_ENABLED":  "1",
			"RATE_LIMIT_STRATEGY": "sliding",
			"REDIS_URL":           "",
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadForTests(env)
			require.Error(t, err)
		})
	}
}

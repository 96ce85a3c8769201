package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
service-id: converter
environment: production
show-logs: true
trace-logs: false
log-dir: /tmp/converter

domain: localhost
http-port: "8080"
http-secured: false
http-body-limit: 1M
cookie-domain: ""
http-allowed-origins:
  - http://localhost:3000

rate-limit-store: memory
rate-limit-window: 15m
rate-limit-api-requests: 100
rate-limit-auth-requests: 10
rate-limit-analysis-requests: 20

cache-socket-timeout: 3s
cache-operation-timeout: 1s

debug-mode: false

sentry-trace-sample-rate: 0.2
`

func TestParse(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		c := new(configs)
		require.NoError(t, parse([]byte(validConfig), c))

		assert.Equal(t, "converter", c.ServiceID)
		assert.Equal(t, "production", c.Environment)
		assert.Equal(t, 15*time.Minute, c.rateLimitConfig.Window())
		assert.Equal(t, time.Second, c.cacheConfig.OperationTimeout())
		assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
		assert.Equal(t, 0.2, c.TraceSampleRate)
	})

	t.Run("invalid duration", func(t *testing.T) {
		raw := strings.Replace(validConfig, "rate-limit-window: 15m", "rate-limit-window: soon", 1)
		assert.Error(t, parse([]byte(raw), new(configs)))
	})

	t.Run("non-positive duration", func(t *testing.T) {
		for _, window := range []string{"0s", "-1m"} {
			raw := strings.Replace(validConfig, "rate-limit-window: 15m", "rate-limit-window: "+window, 1)
			assert.Error(t, parse([]byte(raw), new(configs)), window)
		}

		raw := strings.Replace(validConfig, "cache-operation-timeout: 1s", "cache-operation-timeout: 0s", 1)
		assert.Error(t, parse([]byte(raw), new(configs)))
	})

	t.Run("unknown rate limit store", func(t *testing.T) {
		raw := strings.Replace(validConfig, "rate-limit-store: memory", "rate-limit-store: disk", 1)
		assert.Error(t, parse([]byte(raw), new(configs)))
	})

	t.Run("secured server requires TLS files", func(t *testing.T) {
		raw := strings.Replace(validConfig, "http-secured: false", "http-secured: true", 1)
		assert.Error(t, parse([]byte(raw), new(configs)))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		assert.Error(t, parse([]byte("service-id: ["), new(configs)))
	})
}

func TestReadSecrets(t *testing.T) {
	t.Run("cache variables required for redis store", func(t *testing.T) {
		t.Setenv("CACHE_URI", "localhost:6379")
		t.Setenv("CACHE_DB", "")
		os.Unsetenv("CACHE_DB")

		_, err := readSecrets(true)
		assert.Error(t, err)
	})

	t.Run("reads cache and sentry variables", func(t *testing.T) {
		t.Setenv("CACHE_URI", "localhost:6379")
		t.Setenv("CACHE_DB", "2")
		t.Setenv("SENTRY_DSN", "")

		s, err := readSecrets(true)
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", s.CacheURI)
		assert.Equal(t, 2, s.CacheDB)
		assert.Empty(t, s.SentryDSN)
	})

	t.Run("invalid cache db", func(t *testing.T) {
		t.Setenv("CACHE_DB", "first")
		_, err := readSecrets(false)
		assert.Error(t, err)
	})
}

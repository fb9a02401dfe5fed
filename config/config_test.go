package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.atlaspay.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
	assert.False(t, cfg.HTTP.Debug)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.atlaspay.com", cfg.API.BaseURL)
}

func TestLoadBytesOverridesDefaults(t *testing.T) {
	cfg, err := LoadBytes(rawbytes.Provider([]byte(`
api:
  base_url: https://sandbox.atlaspay.com
  token: sk_test_abc
http:
  timeout_seconds: 10
  max_retries: 1
  debug: true
log:
  level: debug
  pretty: true
`)))
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.atlaspay.com", cfg.API.BaseURL)
	assert.Equal(t, "sk_test_abc", cfg.API.Token)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, 1, cfg.HTTP.MaxRetries)
	assert.True(t, cfg.HTTP.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadBytesMalformedYAML(t *testing.T) {
	_, err := LoadBytes(rawbytes.Provider([]byte("api: [unclosed")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration bytes")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ATLASPAY_API__BASE_URL", "https://env.atlaspay.com")
	t.Setenv("ATLASPAY_HTTP__MAX_RETRIES", "7")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.atlaspay.com", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.HTTP.MaxRetries)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			API:  APIConfig{BaseURL: "https://api.atlaspay.com"},
			HTTP: HTTPConfig{TimeoutSeconds: 30, MaxRetries: 3},
			Log:  LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "static token alone",
			mutate: func(c *Config) { c.API.Token = "sk_live_abc" },
		},
		{
			name: "client credentials together",
			mutate: func(c *Config) {
				c.API.ClientID = "client-1"
				c.API.ClientSecret = "secret-1"
			},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "required",
		},
		{
			name:    "base url not a url",
			mutate:  func(c *Config) { c.API.BaseURL = "not a url" },
			wantErr: "url",
		},
		{
			name:    "timeout below minimum",
			mutate:  func(c *Config) { c.HTTP.TimeoutSeconds = 0 },
			wantErr: "min",
		},
		{
			name:    "timeout above maximum",
			mutate:  func(c *Config) { c.HTTP.TimeoutSeconds = 301 },
			wantErr: "max",
		},
		{
			name:    "too many retries",
			mutate:  func(c *Config) { c.HTTP.MaxRetries = 11 },
			wantErr: "max",
		},
		{
			name: "token and client credentials are exclusive",
			mutate: func(c *Config) {
				c.API.Token = "sk_live_abc"
				c.API.ClientID = "client-1"
				c.API.ClientSecret = "secret-1"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "client id without secret",
			mutate:  func(c *Config) { c.API.ClientID = "client-1" },
			wantErr: "provided together",
		},
		{
			name:    "proxy auth without proxy url",
			mutate:  func(c *Config) { c.HTTP.ProxyAuth = "user:pass" },
			wantErr: "requires proxy_url",
		},
		{
			name: "proxy auth without separator",
			mutate: func(c *Config) {
				c.HTTP.ProxyURL = "http://proxy.internal:3128"
				c.HTTP.ProxyAuth = "userpass"
			},
			wantErr: "user:pass form",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

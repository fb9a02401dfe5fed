package config

import "time"

// Config holds the SDK configuration consumed read-only by the client.
type Config struct {
	API  APIConfig  `koanf:"api"`
	HTTP HTTPConfig `koanf:"http"`
	Log  LogConfig  `koanf:"log"`
}

// APIConfig identifies the upstream API and the credentials used against it.
// Either a static bearer token or client credentials may be supplied, not both.
type APIConfig struct {
	BaseURL      string `koanf:"base_url" validate:"required,url"`
	Token        string `koanf:"token"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// HTTPConfig tunes the transport pipeline.
type HTTPConfig struct {
	TimeoutSeconds int `koanf:"timeout_seconds" validate:"min=1,max=300"`
	// MaxRetries bounds total transport calls to MaxRetries+1.
	MaxRetries int               `koanf:"max_retries" validate:"min=0,max=10"`
	Debug      bool              `koanf:"debug"`
	UserAgent  string            `koanf:"user_agent"`
	Headers    map[string]string `koanf:"headers"`
	ProxyURL   string            `koanf:"proxy_url" validate:"omitempty,url"`
	// ProxyAuth holds proxy credentials in "user:pass" form.
	ProxyAuth string `koanf:"proxy_auth"`
}

// LogConfig controls SDK diagnostic output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// Timeout returns the per-attempt request timeout as a duration.
func (c *HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

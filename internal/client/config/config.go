package config

import "time"

// Config holds runtime settings for the Equiply CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - UserAgent: user agent string used for client-type classification and
//     outgoing requests.
//   - DatabasePath: path to the local sqlite key-value database.
//   - RequestTimeout: per-request deadline for API calls.
//   - RefreshTimeout: deadline for one token refresh exchange.
type Config struct {
	ServerBaseURL  string
	UserAgent      string
	DatabasePath   string
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.UserAgent = "equiply-cli"
	c.DatabasePath = "equiply.db"
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

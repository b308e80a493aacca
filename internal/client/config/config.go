package config

import "time"

// Config holds runtime settings for the ShopDeck CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the marketplace HTTP API.
//   - StateDBPath: path to the SQLite file holding durable client state.
//   - RequestTimeout: per-request deadline for API calls.
type Config struct {
	ServerBaseURL  string
	StateDBPath    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.StateDBPath = "shopdeck.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}

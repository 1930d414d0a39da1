package config

import "time"

// Config holds runtime settings for the PlanHub CLI.
//
// Fields:
//   - APIBaseURL: origin of the PlanHub API, e.g. https://api.planhub.example.
//   - StatePath: sqlite file holding tokens, the cached user and preferences.
//   - StateSecret: secret the local state file is encrypted with.
//   - CacheTTL: how long query results are served without refetching.
type Config struct {
	APIBaseURL  string
	StatePath   string
	StateSecret string
	CacheTTL    time.Duration
}

// LoadDefaults populates c with sensible defaults.
// NOTE: the default state secret is for development only; changing it signs
// the user out, since the old state file no longer decrypts.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.StatePath = "planhub.db"
	c.StateSecret = "planhub-state-secret"
	c.CacheTTL = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

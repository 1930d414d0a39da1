package config

import "os"

// Environment variable names.
const (
	EnvAPIBaseURL  = "PLANHUB_API_URL"
	EnvStatePath   = "PLANHUB_STATE_PATH"
	EnvStateSecret = "PLANHUB_STATE_SECRET"
)

// parseEnv overlays Config with values from the environment. Unset variables
// leave the current values untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvStatePath); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv(EnvStateSecret); v != "" {
		cfg.StateSecret = v
	}
}

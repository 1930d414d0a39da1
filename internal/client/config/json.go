package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/evercare/planhub/internal/flagx"
	"github.com/evercare/planhub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL  string         `json:"api_base_url"`
	StatePath   string         `json:"state_path"`
	StateSecret string         `json:"state_secret"`
	CacheTTL    timex.Duration `json:"cache_ttl"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Absent flags mean no JSON is loaded; read or parse
// failures panic, since a named config file that cannot be used is fatal.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
	if jc.StateSecret != "" {
		cfg.StateSecret = jc.StateSecret
	}
	if jc.CacheTTL.Duration > 0 {
		cfg.CacheTTL = time.Duration(jc.CacheTTL.Duration)
	}
}

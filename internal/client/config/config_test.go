package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, "planhub.db", c.StatePath)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://api.planhub.example")
	t.Setenv(EnvStatePath, "/tmp/state.db")
	t.Setenv(EnvStateSecret, "env-secret")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://api.planhub.example", c.APIBaseURL)
	assert.Equal(t, "/tmp/state.db", c.StatePath)
	assert.Equal(t, "env-secret", c.StateSecret)
}

func TestParseEnv_UnsetLeavesDefaults(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
}

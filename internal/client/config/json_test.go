package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "api_base_url": "https://api.planhub.example",
	  "state_path": "/var/lib/planhub/planhub.db",
	  "cache_ttl": "45s"
	}`), 0o600))

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "https://api.planhub.example", c.APIBaseURL)
	assert.Equal(t, "/var/lib/planhub/planhub.db", c.StatePath)
	assert.Equal(t, 45*time.Second, c.CacheTTL)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	os.Args = []string{"cmd", "-c", "/nonexistent/conf.json"}

	var c Config
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(&c) })
}

func TestParseFlags(t *testing.T) {
	os.Args = []string{"cmd", "-a", "https://staging.planhub.example", "-s", "/tmp/s.db"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, "https://staging.planhub.example", c.APIBaseURL)
	assert.Equal(t, "/tmp/s.db", c.StatePath)
}

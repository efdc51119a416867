package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velmark/skyroute/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, config.ModeSynthetic, cfg.Provider.Mode)
	assert.EqualValues(t, 1, cfg.Provider.Seed)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, `
listen: ":9090"
airports:
  csv_path: /data/airports.csv
  codes: [JFK, LHR, BOS]
provider:
  mode: auto
  base_url: https://fly-scraper.example.com
  api_key: k
  api_host: fly-scraper.example.com
  seed: 42
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "/data/airports.csv", cfg.Airports.CSVPath)
	assert.Equal(t, []string{"JFK", "LHR", "BOS"}, cfg.Airports.Codes)
	assert.Equal(t, config.ModeAuto, cfg.Provider.Mode)
	assert.EqualValues(t, 42, cfg.Provider.Seed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "listen: \":9090\"\n")
	t.Setenv("SKYROUTE_LISTEN", ":7070")
	t.Setenv("SKYROUTE_PROVIDER_MODE", "SYNTHETIC")
	t.Setenv("SKYROUTE_SEED", "99")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, config.ModeSynthetic, cfg.Provider.Mode)
	assert.EqualValues(t, 99, cfg.Provider.Seed)
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "provider:\n  mode: oracle\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider mode")
}

func TestLoad_LiveModeRequiresEndpointSettings(t *testing.T) {
	// live and auto modes need the full API triple, not just the key:
	// a missing base URL or host would otherwise surface only at request time.
	for name, body := range map[string]string{
		"no key":      "provider:\n  mode: live\n  base_url: https://api.test\n  api_host: api.test\n",
		"no base url": "provider:\n  mode: live\n  api_key: k\n  api_host: api.test\n",
		"no api host": "provider:\n  mode: auto\n  api_key: k\n  base_url: https://api.test\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "requires base_url, api_key and api_host")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

// Package config loads runtime settings from a YAML file with environment
// variable overrides, so deployments can tweak the listen address or swap
// providers without editing files.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Provider modes accepted by Config.Provider.Mode.
const (
	ModeLive      = "live"
	ModeSynthetic = "synthetic"
	ModeAuto      = "auto" // live with synthetic fallback
)

// Config is the full runtime configuration.
type Config struct {
	Listen   string   `yaml:"listen"`
	Airports Airports `yaml:"airports"`
	Provider Provider `yaml:"provider"`
}

// Airports selects the airport dataset.
type Airports struct {
	// CSVPath points at an OurAirports-format CSV. Empty means the
	// built-in demo set.
	CSVPath string `yaml:"csv_path"`

	// Codes restricts the network to these IATA codes. Empty means all
	// airports in the dataset, which for a full CSV is usually too many
	// to price pairwise.
	Codes []string `yaml:"codes"`
}

// Provider selects and configures the offer source.
type Provider struct {
	Mode    string `yaml:"mode"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	APIHost string `yaml:"api_host"`
	Seed    int64  `yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen: ":8080",
		Provider: Provider{
			Mode: ModeSynthetic,
			Seed: 1,
		},
	}
}

// Load reads path (when non-empty), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "config: read file")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrap(err, "config: parse yaml")
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Environment variables override file values.
const (
	envListen       = "SKYROUTE_LISTEN"
	envAirportsCSV  = "SKYROUTE_AIRPORTS_CSV"
	envProviderMode = "SKYROUTE_PROVIDER_MODE"
	envAPIBaseURL   = "SKYROUTE_API_BASE_URL"
	envAPIKey       = "SKYROUTE_API_KEY"
	envAPIHost      = "SKYROUTE_API_HOST"
	envSeed         = "SKYROUTE_SEED"
)

func applyEnv(cfg *Config) {
	if v := os.Getenv(envListen); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(envAirportsCSV); v != "" {
		cfg.Airports.CSVPath = v
	}
	if v := os.Getenv(envProviderMode); v != "" {
		cfg.Provider.Mode = strings.ToLower(v)
	}
	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv(envAPIKey); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv(envAPIHost); v != "" {
		cfg.Provider.APIHost = v
	}
	if v := os.Getenv(envSeed); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Provider.Seed = n
		}
	}
}

func (c Config) validate() error {
	switch c.Provider.Mode {
	case ModeLive, ModeSynthetic, ModeAuto:
	default:
		return errors.Errorf("config: unknown provider mode %q", c.Provider.Mode)
	}
	if c.Provider.Mode != ModeSynthetic {
		if c.Provider.APIKey == "" || c.Provider.BaseURL == "" || c.Provider.APIHost == "" {
			return errors.Errorf("config: provider mode %q requires base_url, api_key and api_host", c.Provider.Mode)
		}
	}
	if c.Listen == "" {
		return errors.New("config: listen address must not be empty")
	}

	return nil
}

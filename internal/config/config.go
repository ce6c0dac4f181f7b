package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tokensift/tokensift/internal/analyze"
)

// Config is the tool configuration. Everything has a default; the only
// thing that must come from somewhere is the API key.
type Config struct {
	API struct {
		BaseURL           string  `yaml:"base_url"`
		Key               string  `yaml:"key"`
		Limit             int     `yaml:"limit"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"api"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	HistoryDB       string `yaml:"history_db"`
	Defaults        struct {
		Chain  string `yaml:"chain"`
		Risk   string `yaml:"risk"`
		Top    int    `yaml:"top"`
		Source string `yaml:"source"`
	} `yaml:"defaults"`
	// Per-tier threshold overrides; zero fields keep built-ins.
	Tiers map[string]analyze.Thresholds `yaml:"tiers"`
	// Extra chain definitions, merged over the built-in ones.
	Chains map[string]analyze.Chain `yaml:"chains"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var cfg Config
	cfg.API.BaseURL = "https://pro-api.coinmarketcap.com/v1"
	cfg.API.Limit = 5000
	cfg.API.TimeoutSeconds = 30
	cfg.API.RequestsPerSecond = 2
	cfg.CacheTTLSeconds = 300
	cfg.HistoryDB = filepath.Join(configDir(), "history.db")
	cfg.Defaults.Chain = "ethereum"
	cfg.Defaults.Risk = "medium"
	cfg.Defaults.Top = 10
	cfg.Defaults.Source = "cmc"
	return cfg
}

// Load reads YAML configuration from a path. If path is empty, it resolves
// $XDG_CONFIG_HOME/tokensift/config.yaml or ~/.config/tokensift/config.yaml;
// a missing default-path file is not an error, the defaults apply. The API
// key is then overlaid from secrets.env and the CMC_API_KEY env var.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if path == "" {
		path = filepath.Join(configDir(), "config.yaml")
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			applySecrets(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applySecrets(&cfg)
	return cfg, nil
}

// applySecrets merges the API key from secrets.env and the environment, so
// tokens never need to live in YAML.
func applySecrets(cfg *Config) {
	secrets, _ := LoadSecretsEnv("")
	if k, ok := secrets["CMC_API_KEY"]; ok && k != "" {
		cfg.API.Key = k
	}
	if k := os.Getenv("CMC_API_KEY"); k != "" {
		cfg.API.Key = k
	}
}

// Timeout returns the API request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CacheTTL returns the listings cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// TierThresholds resolves the effective thresholds for a tier: built-ins
// merged with any config override.
func (c Config) TierThresholds(tier analyze.Tier) analyze.Thresholds {
	th := analyze.DefaultThresholds()[tier]
	if o, ok := c.Tiers[string(tier)]; ok {
		th = th.Merge(o)
	}
	return th
}

// ChainDefs resolves the effective chain map: built-ins plus config extras.
func (c Config) ChainDefs() map[string]analyze.Chain {
	chains := analyze.DefaultChains()
	for name, def := range c.Chains {
		chains[name] = def
	}
	return chains
}

func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tokensift")
}

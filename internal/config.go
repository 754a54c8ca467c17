package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is used when no config file or environment override exists
const DefaultAPIBaseURL = "https://127.0.0.1:5000"

// Config holds client settings loaded from ~/.certipro/config.yaml,
// overridable through CERTIPRO_* environment variables and flags.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StatePath      string        `yaml:"state_path,omitempty"`
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".certipro", "config.yaml"), nil
}

// LoadConfig reads the config file at path, fills defaults, and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		RequestTimeout: 30 * time.Second,
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if url := os.Getenv("CERTIPRO_API_URL"); url != "" {
		cfg.APIBaseURL = url
	}
	if state := os.Getenv("CERTIPRO_STATE_PATH"); state != "" {
		cfg.StatePath = state
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wardview/wardview/views"
)

// ============================================================================
// CONFIG — .env + environment + optional YAML file
// ============================================================================
// Precedence, lowest to highest: defaults → YAML file → environment.
// CLI flags override all of these in cmd/wardview.
// ============================================================================

// Config is the full runtime configuration.
type Config struct {
	Addr  string       `yaml:"addr"`
	Data  string       `yaml:"data"`
	Views views.Config `yaml:"views"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:  ":8080",
		Data:  "data/healthcare_dataset.csv",
		Views: views.DefaultConfig(),
	}
}

// Load builds a Config: defaults, then the YAML file at path (skipped when
// path is empty), then WARDVIEW_* environment variables. A .env file in the
// working directory is honored if present.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	_ = godotenv.Load() // optional

	if v := os.Getenv("WARDVIEW_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("WARDVIEW_DATA"); v != "" {
		cfg.Data = v
	}

	return cfg, nil
}

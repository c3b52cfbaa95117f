// Package config loads application configuration from an optional YAML
// file plus environment variable overrides.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure. Every field maps to a key
// in the YAML file and can be overridden by the corresponding
// environment variable.
type Config struct {
	// Env controls log format and verbosity: "dev" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// Backend selects the persistence store: "sqlite" or "jsonfile".
	Backend string `yaml:"backend" env:"BACKEND" env-default:"sqlite"`

	// DBPath is the SQLite database file (sqlite backend).
	DBPath string `yaml:"db_path" env:"DB_PATH" env-default:"./data/schoolhub.db"`

	// SnapshotPath is the JSON snapshot file (jsonfile backend).
	SnapshotPath string `yaml:"snapshot_path" env:"SNAPSHOT_PATH" env-default:"./data/schoolhub.json"`

	// ValidationMode is "strict" or "permissive". Strict is canonical:
	// it mirrors the constraints the relational schema enforces.
	ValidationMode string `yaml:"validation_mode" env:"VALIDATION_MODE" env-default:"strict"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8080"`
}

// Load reads the config. The file path comes from the CONFIG_PATH
// environment variable or the --config flag; with neither set, defaults
// and environment variables alone apply.
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flagPath := flag.String("config", "", "path to the configuration YAML file")
		flag.Parse()
		configPath = *flagPath
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return &cfg, nil
}

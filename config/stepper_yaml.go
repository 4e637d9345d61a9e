// Package config locates and loads stepper configuration from stepper.yaml,
// a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/initializ/stepper/types"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "stepper.yaml"

// Environment variables that override stepper.yaml.
const (
	EnvEndpoint = "STEPPER_ENDPOINT"
	EnvTheme    = "STEPPER_THEME"
	EnvLogFile  = "STEPPER_LOG_FILE"
	EnvLogLevel = "STEPPER_LOG_LEVEL"
)

// LoadStepperConfig reads and parses the stepper.yaml at path. When
// mustExist is false a missing file yields the default configuration.
func LoadStepperConfig(path string, mustExist bool) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return types.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading stepper config %s: %w", path, err)
	}
	return types.ParseConfig(data)
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays STEPPER_* environment variables onto cfg.
func ApplyEnv(cfg *types.Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Load resolves the effective configuration: defaults, then stepper.yaml,
// then the .env file, then the environment. Only the file's shape is
// checked here; callers run Validate once their own overrides are applied.
func Load(path string, mustExist bool, envFile string) (*types.Config, error) {
	cfg, err := LoadStepperConfig(path, mustExist)
	if err != nil {
		return nil, err
	}
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	return cfg, nil
}

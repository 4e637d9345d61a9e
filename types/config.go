// Package types holds configuration types for stepper.yaml.
package types

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/initializ/stepper/stream"
	"github.com/initializ/stepper/validate"
)

// DefaultEndpoint is the process stream consumed when none is configured.
const DefaultEndpoint = stream.DefaultEndpoint

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid stepper config")

// Config represents the top-level stepper.yaml configuration.
type Config struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Theme    string `yaml:"theme,omitempty"` // dark, light, auto
	Rearm    *bool  `yaml:"rearm,omitempty"`
	Log      LogRef `yaml:"log,omitempty"`
}

// LogRef configures the diagnostic log.
type LogRef struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`  // empty discards
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// RearmEnabled reports whether the start control re-enables once a session
// ends. Unset means true.
func (c *Config) RearmEnabled() bool {
	return c.Rearm == nil || *c.Rearm
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Check returns semantic findings for an already-decoded config.
func (c *Config) Check() []string {
	var findings []string

	u, err := url.Parse(c.Endpoint)
	switch {
	case err != nil:
		findings = append(findings, fmt.Sprintf("endpoint: %v", err))
	case u.Scheme != "http" && u.Scheme != "https":
		findings = append(findings, fmt.Sprintf("endpoint: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		findings = append(findings, "endpoint: host is required")
	}

	switch strings.ToLower(c.Theme) {
	case "", "auto", "dark", "light":
	default:
		findings = append(findings, fmt.Sprintf("theme: must be dark, light or auto, got %q", c.Theme))
	}

	return findings
}

// Validate returns an ErrInvalidConfig error describing every finding.
func (c *Config) Validate() error {
	if findings := c.Check(); len(findings) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(findings, "; "))
	}
	return nil
}

// DecodeConfig parses raw YAML bytes, applies defaults and returns the
// config together with schema and semantic findings. An error is returned
// only when the document is not valid YAML. The config is nil when the
// findings make a typed decode impossible.
func DecodeConfig(data []byte) (*Config, []string, error) {
	cfg, findings, err := decodeDocument(data)
	if err != nil || cfg == nil {
		return cfg, findings, err
	}
	return cfg, append(findings, cfg.Check()...), nil
}

// ParseConfig parses raw YAML bytes into a Config, rejecting documents
// that do not match the config schema. Semantic checks are left to
// Validate so that overrides can be applied first.
func ParseConfig(data []byte) (*Config, error) {
	cfg, findings, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(findings, "; "))
	}
	return cfg, nil
}

// decodeDocument runs the schema check and the typed decode.
func decodeDocument(data []byte) (*Config, []string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing stepper config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	findings, err := validate.ValidateConfigDocument(doc)
	if err != nil {
		return nil, nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if len(findings) > 0 {
			// The schema already explains why the typed decode failed.
			return nil, findings, nil
		}
		return nil, nil, fmt.Errorf("parsing stepper config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, findings, nil
}

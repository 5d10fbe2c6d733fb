package dradis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds client connection settings loaded from a file.
type Config struct {
	// URL is the base URL of the Dradis instance.
	URL string `yaml:"url" json:"url"`
	// APIToken is the credential sent on every request. Mutually
	// exclusive with APITokenFile.
	APIToken string `yaml:"api_token" json:"api_token"`
	// APITokenFile points at a file whose first line is the token.
	APITokenFile string `yaml:"api_token_file" json:"api_token_file"`
	// TimeoutSeconds bounds each HTTP request; zero means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`
	// VerifySSL controls TLS certificate verification; defaults to true.
	VerifySSL *bool `yaml:"verify_ssl" json:"verify_ssl"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// LoadConfig reads a client config file (YAML or JSON). Format is
// detected by extension: .yaml/.yml parse as YAML, everything else as
// JSON.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var cfg Config
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the config names an instance and exactly one
// token source.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: url is required")
	}
	if c.APIToken == "" && c.APITokenFile == "" {
		return fmt.Errorf("config: one of api_token or api_token_file is required")
	}
	if c.APIToken != "" && c.APITokenFile != "" {
		return fmt.Errorf("config: api_token and api_token_file are mutually exclusive")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config: timeout_seconds must not be negative")
	}
	return nil
}

// NewFromConfig builds a Client from a loaded config. Extra options are
// applied after the ones derived from the config, so they win.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	token := cfg.APIToken
	if cfg.APITokenFile != "" {
		var err error
		token, err = ReadAPIToken(cfg.APITokenFile)
		if err != nil {
			return nil, fmt.Errorf("config: read token file: %w", err)
		}
	}

	var derived []Option
	if cfg.TimeoutSeconds > 0 {
		derived = append(derived, WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.VerifySSL != nil && !*cfg.VerifySSL {
		derived = append(derived, WithInsecureSkipVerify())
	}
	if cfg.UserAgent != "" {
		derived = append(derived, WithUserAgent(cfg.UserAgent))
	}
	derived = append(derived, opts...)

	return New(cfg.URL, token, derived...)
}

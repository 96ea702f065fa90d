// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/coverage"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job     string `json:"job,omitempty"`     // Path to extracted job JSON file
	Profile string `json:"profile,omitempty"` // Path to candidate profile JSON file

	// Behavior
	APIKey                  string `json:"api_key,omitempty"`                   // Gemini API key
	DatabaseURL             string `json:"database_url,omitempty"`              // PostgreSQL connection URL
	RedisURL                string `json:"redis_url,omitempty"`                 // Redis URL for the embedding cache
	MaxBullets              int    `json:"max_bullets,omitempty"`               // Maximum bullets to generate
	RequireFullVerification bool   `json:"require_full_verification,omitempty"` // Only keep 4/4 verified bullets
	Verbose                 bool   `json:"verbose,omitempty"`                   // Print detailed debug information

	// Similarity thresholds (0.0-1.0); zero values use defaults
	MustHaveThreshold   float64 `json:"must_have_threshold,omitempty"`
	NiceToHaveThreshold float64 `json:"nice_to_have_threshold,omitempty"`
	WeakMatchThreshold  float64 `json:"weak_match_threshold,omitempty"`
	AmbiguityWindow     float64 `json:"ambiguity_window,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxBullets < 0 {
		return fmt.Errorf("config error: 'max_bullets' must be non-negative")
	}

	for name, v := range map[string]float64{
		"must_have_threshold":    c.MustHaveThreshold,
		"nice_to_have_threshold": c.NiceToHaveThreshold,
		"weak_match_threshold":   c.WeakMatchThreshold,
		"ambiguity_window":       c.AmbiguityWindow,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("config error: '%s' must be between 0 and 1", name)
		}
	}

	// Threshold ordering: weak floor <= nice-to-have <= must-have
	th := c.Thresholds()
	if th.WeakMatch > th.NiceToHaveCovered || th.NiceToHaveCovered > th.MustHaveCovered {
		return fmt.Errorf("config error: thresholds must satisfy weak_match <= nice_to_have <= must_have")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.MaxBullets == 0 {
		result.MaxBullets = defaults.MaxBullets
	}
	if result.MustHaveThreshold == 0 {
		result.MustHaveThreshold = defaults.MustHaveThreshold
	}
	if result.NiceToHaveThreshold == 0 {
		result.NiceToHaveThreshold = defaults.NiceToHaveThreshold
	}
	if result.WeakMatchThreshold == 0 {
		result.WeakMatchThreshold = defaults.WeakMatchThreshold
	}
	if result.AmbiguityWindow == 0 {
		result.AmbiguityWindow = defaults.AmbiguityWindow
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Thresholds converts the configured threshold fields into coverage
// thresholds, falling back to defaults for zero values.
func (c *Config) Thresholds() coverage.Thresholds {
	th := coverage.DefaultThresholds()
	if c.MustHaveThreshold > 0 {
		th.MustHaveCovered = c.MustHaveThreshold
	}
	if c.NiceToHaveThreshold > 0 {
		th.NiceToHaveCovered = c.NiceToHaveThreshold
	}
	if c.WeakMatchThreshold > 0 {
		th.WeakMatch = c.WeakMatchThreshold
	}
	if c.AmbiguityWindow > 0 {
		th.AmbiguityWindow = c.AmbiguityWindow
	}
	return th
}

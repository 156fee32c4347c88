package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the testanything configuration
type Config struct {
	OutputFile string   `json:"outputFile,omitempty"` // TAP destination, stdout when empty
	Query      string   `json:"query,omitempty"`      // gjson path for JSON documents
	Suite      string   `json:"suite,omitempty"`      // suite name for SQLite sources
	Rate       *float64 `json:"rate,omitempty"`       // stream results per second, 0 = unlimited
	Bail       *bool    `json:"bail,omitempty"`
	Announce   *bool    `json:"announce,omitempty"`
	Validate   *bool    `json:"validate,omitempty"`
	Summary    *bool    `json:"summary,omitempty"`
	Verbose    *bool    `json:"verbose,omitempty"`
	NoColor    *bool    `json:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// Float64Ptr returns a pointer to f
func Float64Ptr(f float64) *float64 {
	return &f
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetRate returns the stream rate, defaulting to 0 (unlimited)
func (c *Config) GetRate() float64 {
	if c.Rate == nil {
		return 0
	}
	return *c.Rate
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetAnnounce returns the announce setting, defaulting to false
func (c *Config) GetAnnounce() bool {
	return getBool(c.Announce, false)
}

// GetValidate returns the validate setting, defaulting to true
func (c *Config) GetValidate() bool {
	return getBool(c.Validate, true)
}

// GetSummary returns the summary setting, defaulting to false
func (c *Config) GetSummary() bool {
	return getBool(c.Summary, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".testanything.json",
	"testanything.json",
	".testanythingrc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.OutputFile != "" {
		result.OutputFile = other.OutputFile
	}
	if other.Query != "" {
		result.Query = other.Query
	}
	if other.Suite != "" {
		result.Suite = other.Suite
	}

	// Pointer fields - only override if explicitly set in other config
	if other.Rate != nil {
		result.Rate = other.Rate
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Announce != nil {
		result.Announce = other.Announce
	}
	if other.Validate != nil {
		result.Validate = other.Validate
	}
	if other.Summary != nil {
		result.Summary = other.Summary
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

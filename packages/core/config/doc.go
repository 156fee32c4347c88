// Package config handles configuration loading and management for testanything.
//
// It provides functionality for:
//   - Loading configuration from .testanything.json, testanything.json or .testanythingrc
//   - Default configuration values
//   - Merging file settings with command-line overrides
package config

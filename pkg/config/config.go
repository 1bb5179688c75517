// Package config provides configuration loading and management for ctqa.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Report parameters
	Report struct {
		// Title is the document title placed on the exported report
		Title string `yaml:"title"`

		// AutoOpen controls whether the exported report is handed to the
		// platform's default viewer after a successful export
		AutoOpen bool `yaml:"autoOpen"`

		// ImageWidth and ImageHeight are the pixel dimensions of the
		// print-oriented module images embedded in the report
		ImageWidth  int `yaml:"imageWidth"`
		ImageHeight int `yaml:"imageHeight"`
	} `yaml:"report"`

	// Chart parameters for the interactive rendering path
	Charts struct {
		// Width and Height are the pixel dimensions of interactive plots
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"charts"`

	// Analysis parameters
	Analysis struct {
		// HUTolerance is the acceptable deviation between nominal and
		// measured CT numbers, in HU, used when flagging linearity rows
		HUTolerance float64 `yaml:"huTolerance"`
	} `yaml:"analysis"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default report parameters
	cfg.Report.Title = "CT Analysis Report"
	cfg.Report.AutoOpen = false
	cfg.Report.ImageWidth = 900
	cfg.Report.ImageHeight = 600

	// Set default chart parameters
	cfg.Charts.Width = 640
	cfg.Charts.Height = 420

	// Set default analysis parameters
	cfg.Analysis.HUTolerance = 40.0

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

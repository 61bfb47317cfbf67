// Package config loads and saves the on-disk defaults applied underneath
// explicit CLI flags: optimization level, target CPU, enabled/disabled
// optimization sets, syntax, and the HTTP API port.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the optimizer's on-disk configuration.
type Config struct {
	// Execution settings
	Execution struct {
		DefaultArchitecture     string `toml:"default_architecture"`
		DefaultTargetCPU        string `toml:"default_target_cpu"`
		DefaultOptimizationLevel int   `toml:"default_optimization_level"`
		AMDOptimizations        bool   `toml:"amd_optimizations"`
	} `toml:"execution"`

	// Optimizations settings
	Optimizations struct {
		Enabled  []string `toml:"enabled"`
		Disabled []string `toml:"disabled"`
	} `toml:"optimizations"`

	// Display settings
	Display struct {
		DefaultFormat string `toml:"default_format"` // "intel", "att", or "" for autodetect
		HotAlign      bool   `toml:"hot_align"`
	} `toml:"display"`

	// API settings
	API struct {
		Port int `toml:"port"`
	} `toml:"api"`
}

// DefaultConfig returns a configuration matching the programmatic-surface
// defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.DefaultArchitecture = "x86-64"
	cfg.Execution.DefaultTargetCPU = "generic"
	cfg.Execution.DefaultOptimizationLevel = 2
	cfg.Execution.AMDOptimizations = true

	cfg.Optimizations.Enabled = []string{"peephole"}
	cfg.Optimizations.Disabled = nil

	cfg.Display.DefaultFormat = ""
	cfg.Display.HotAlign = false

	cfg.API.Port = 8080

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "asmopt")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "asmopt")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: it yields the built-in defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Apply copies the config's defaults onto ctx-equivalent setter calls. It
// takes plain setter closures rather than *optimizer.Context directly so
// this package never imports the optimizer package (config stays a leaf
// dependency, matching its role in the dependency order of SPEC_FULL.md §2).
func (c *Config) Apply(setOptimizationLevel func(int), setTargetCPU func(string), setAMD func(bool), enable func(string), disable func(string), setHotAlign func(bool)) {
	setOptimizationLevel(c.Execution.DefaultOptimizationLevel)
	setTargetCPU(c.Execution.DefaultTargetCPU)
	setAMD(c.Execution.AMDOptimizations)
	for _, name := range c.Optimizations.Enabled {
		enable(name)
	}
	for _, name := range c.Optimizations.Disabled {
		disable(name)
	}
	setHotAlign(c.Display.HotAlign)
}

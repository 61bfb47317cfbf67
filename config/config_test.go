package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test execution defaults
	if cfg.Execution.DefaultArchitecture != "x86-64" {
		t.Errorf("Expected DefaultArchitecture=x86-64, got %s", cfg.Execution.DefaultArchitecture)
	}
	if cfg.Execution.DefaultTargetCPU != "generic" {
		t.Errorf("Expected DefaultTargetCPU=generic, got %s", cfg.Execution.DefaultTargetCPU)
	}
	if cfg.Execution.DefaultOptimizationLevel != 2 {
		t.Errorf("Expected DefaultOptimizationLevel=2, got %d", cfg.Execution.DefaultOptimizationLevel)
	}
	if !cfg.Execution.AMDOptimizations {
		t.Error("Expected AMDOptimizations=true")
	}

	// Test optimizations defaults
	if len(cfg.Optimizations.Enabled) != 1 || cfg.Optimizations.Enabled[0] != "peephole" {
		t.Errorf("Expected Enabled=[peephole], got %v", cfg.Optimizations.Enabled)
	}
	if len(cfg.Optimizations.Disabled) != 0 {
		t.Errorf("Expected Disabled to be empty, got %v", cfg.Optimizations.Disabled)
	}

	// Test display defaults
	if cfg.Display.DefaultFormat != "" {
		t.Errorf("Expected DefaultFormat=\"\" (autodetect), got %s", cfg.Display.DefaultFormat)
	}
	if cfg.Display.HotAlign {
		t.Error("Expected HotAlign=false")
	}

	// Test API defaults
	if cfg.API.Port != 8080 {
		t.Errorf("Expected Port=8080, got %d", cfg.API.Port)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	// Verify path is not empty
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	// Verify path ends with config.toml
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		// Should be in .config/asmopt or be fallback
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "asmopt" && path != "config.toml" {
			t.Errorf("Expected path in asmopt directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Execution.DefaultOptimizationLevel = 4
	cfg.Execution.DefaultTargetCPU = "zen4"
	cfg.Optimizations.Disabled = []string{"bsf_to_tzcnt"}
	cfg.Display.HotAlign = true
	cfg.API.Port = 9090

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Execution.DefaultOptimizationLevel != 4 {
		t.Errorf("Expected DefaultOptimizationLevel=4, got %d", loaded.Execution.DefaultOptimizationLevel)
	}
	if loaded.Execution.DefaultTargetCPU != "zen4" {
		t.Errorf("Expected DefaultTargetCPU=zen4, got %s", loaded.Execution.DefaultTargetCPU)
	}
	if len(loaded.Optimizations.Disabled) != 1 || loaded.Optimizations.Disabled[0] != "bsf_to_tzcnt" {
		t.Errorf("Expected Disabled=[bsf_to_tzcnt], got %v", loaded.Optimizations.Disabled)
	}
	if !loaded.Display.HotAlign {
		t.Error("Expected HotAlign=true")
	}
	if loaded.API.Port != 9090 {
		t.Errorf("Expected Port=9090, got %d", loaded.API.Port)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	// Should return default config without error
	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Execution.DefaultOptimizationLevel != 2 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
default_optimization_level = "not a number"  # Invalid: should be an int
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	// Save to a path with non-existent subdirectories
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}

func TestApplyUsesFileConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Execution.DefaultOptimizationLevel = 3
	cfg.Execution.DefaultTargetCPU = "zen5"
	cfg.Execution.AMDOptimizations = false
	cfg.Optimizations.Enabled = []string{"peephole", "bsf_to_tzcnt"}
	cfg.Optimizations.Disabled = []string{"dead_store_move"}
	cfg.Display.HotAlign = true

	var level int
	var targetCPU string
	var amd bool
	var enabled, disabled []string
	var hotAlign bool

	cfg.Apply(
		func(l int) { level = l },
		func(c string) { targetCPU = c },
		func(a bool) { amd = a },
		func(name string) { enabled = append(enabled, name) },
		func(name string) { disabled = append(disabled, name) },
		func(h bool) { hotAlign = h },
	)

	if level != 3 {
		t.Errorf("level = %d, want 3", level)
	}
	if targetCPU != "zen5" {
		t.Errorf("targetCPU = %s, want zen5", targetCPU)
	}
	if amd {
		t.Error("amd = true, want false")
	}
	if len(enabled) != 2 || enabled[0] != "peephole" || enabled[1] != "bsf_to_tzcnt" {
		t.Errorf("enabled = %v, want [peephole bsf_to_tzcnt]", enabled)
	}
	if len(disabled) != 1 || disabled[0] != "dead_store_move" {
		t.Errorf("disabled = %v, want [dead_store_move]", disabled)
	}
	if !hotAlign {
		t.Error("hotAlign = false, want true")
	}
}

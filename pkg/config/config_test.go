package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the default values are usable as-is.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Report.Title == "" {
		t.Error("Expected non-empty default report title")
	}
	if cfg.Report.ImageWidth <= 0 || cfg.Report.ImageHeight <= 0 {
		t.Error("Expected positive default report image dimensions")
	}
	if cfg.Charts.Width <= 0 || cfg.Charts.Height <= 0 {
		t.Error("Expected positive default chart dimensions")
	}
	if cfg.Analysis.HUTolerance <= 0 {
		t.Error("Expected positive default HU tolerance")
	}
}

// TestLoadConfigMissingFile verifies a missing file falls back to defaults.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if cfg.Report.Title != DefaultConfig().Report.Title {
		t.Error("Expected default title for missing file")
	}
}

// TestSaveLoadRoundTrip verifies configuration survives a save/load cycle.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ctqa.yaml")

	cfg := DefaultConfig()
	cfg.Report.Title = "Monthly CT QA"
	cfg.Report.AutoOpen = true
	cfg.Analysis.HUTolerance = 25.0

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Report.Title != "Monthly CT QA" {
		t.Errorf("Expected title %q, got %q", "Monthly CT QA", loaded.Report.Title)
	}
	if !loaded.Report.AutoOpen {
		t.Error("Expected autoOpen to round-trip")
	}
	if loaded.Analysis.HUTolerance != 25.0 {
		t.Errorf("Expected HU tolerance 25.0, got %f", loaded.Analysis.HUTolerance)
	}
}

// TestLoadConfigInvalidYAML verifies malformed files surface an error.
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("report: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for malformed YAML, got nil")
	}
}

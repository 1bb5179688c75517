package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"ctqa/pkg/analysis"
	"ctqa/pkg/catphan"
	"ctqa/pkg/config"
	"ctqa/pkg/phantom"
	"ctqa/pkg/presentation"
)

// TestWritePlots verifies one screen-sized PNG is written per populated
// module, named after the module descriptor, using the configured chart
// dimensions.
func TestWritePlots(t *testing.T) {
	record := &catphan.Results{
		Kind: phantom.CatPhan504,
		Uniformity: &catphan.UniformityModule{
			ROIs: []catphan.UniformityROI{
				{Position: "Center", HU: 0.5},
				{Position: "Top", HU: 1.2},
			},
			Index: 0.07,
		},
		LowContrast: &catphan.LowContrastModule{
			ROIs: []catphan.LowContrastROI{
				{Name: "ROI 1", Contrast: 0.12},
				{Name: "ROI 2", Contrast: 0.02},
			},
			Visibility: 0.14,
		},
	}

	bundle := presentation.NewBundle(record)
	result := &analysis.Result{Rows: bundle.SummaryRows(), Bundle: bundle}

	dir := filepath.Join(t.TempDir(), "plots")
	if err := writePlots(config.DefaultConfig(), result, dir); err != nil {
		t.Fatalf("writePlots failed: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	for _, name := range []string{"uniformity.png", "low_contrast.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("Expected plot file %s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("Plot file %s is not a PNG", name)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list plot directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected exactly 2 plot files, got %d", len(entries))
	}
}

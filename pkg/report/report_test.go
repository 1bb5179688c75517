package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"ctqa/pkg/presentation"
)

// testImage encodes a small solid PNG for embedding tests.
func testImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 80, B: 160, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// sampleRows mirrors the shape of summary output: header, separators and
// per-module blocks.
func sampleRows() []presentation.Row {
	return []presentation.Row{
		{Label: "Phantom Type:", Value: "CatPhan 504"},
		{},
		{Label: "HU Linearity:"},
		{Label: "  Air (nominal -1000.00 HU):", Value: "-998.60 HU"},
		{Label: "  Acrylic (nominal 115.00 HU):", Value: "117.35 HU"},
		{},
		{Label: "Low Contrast:"},
		{Label: "  ROI 1:", Value: "0.1235"},
		{Label: "Low Contrast Visibility:", Value: "0.1435"},
	}
}

// TestExportReadTableRoundTrip verifies exporting then re-reading the report
// reproduces the same ordered rows, values and separators included.
func TestExportReadTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	rows := sampleRows()

	exporter := NewExporter("CT Analysis Report")
	if err := exporter.Export(path, rows, [][]byte{testImage(t), testImage(t)}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Exported report does not exist: %v", err)
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	if len(got) != len(rows) {
		t.Fatalf("Expected %d rows back, got %d", len(rows), len(got))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, rows[i], got[i])
		}
	}
}

// TestExportWithoutImages verifies a report with an empty image set is still
// a valid document.
func TestExportWithoutImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	exporter := NewExporter("CT Analysis Report")
	if err := exporter.Export(path, sampleRows(), nil); err != nil {
		t.Fatalf("Export without images failed: %v", err)
	}

	if _, err := ReadTable(path); err != nil {
		t.Errorf("ReadTable on image-free report failed: %v", err)
	}
}

// TestExportWriteFailure verifies a bad destination surfaces as a single
// error rather than a crash.
func TestExportWriteFailure(t *testing.T) {
	exporter := NewExporter("CT Analysis Report")

	badPath := filepath.Join(t.TempDir(), "missing", "nested", "report.xlsx")
	if err := exporter.Export(badPath, sampleRows(), nil); err == nil {
		t.Error("Expected error for unwritable destination, got nil")
	}
}

// Package catphan implements loading and measurement of CatPhan CT phantom
// image series. It provides the registry that maps a phantom kind to the
// analyzer geometry for that hardware model, the zip archive loader for CT
// slice series, and the measurement pass that produces a partially-populated
// Results record.
package catphan

import (
	"archive/zip"
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	// Registered decoders for the slice formats found in exported CT
	// archives. TIFF decoding comes from golang.org/x/image.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// huRescaleOffset converts stored grayscale values to CT numbers. Slice
// exports store CT numbers shifted by +1024 so that air (-1000 HU) remains
// representable in an unsigned image format.
const huRescaleOffset = 1024.0

// Dataset is a loaded CT slice series. Slices are ordered by the numeric
// component of their filenames, which preserves the acquisition order along
// the scan axis.
type Dataset struct {
	// slices holds the decoded slice images in scan order.
	slices []image.Image

	// width and height are the pixel dimensions shared by all slices.
	width  int
	height int
}

// NumSlices returns the number of slices in the series.
func (d *Dataset) NumSlices() int {
	return len(d.slices)
}

// Bounds returns the shared pixel dimensions of the series.
func (d *Dataset) Bounds() (width, height int) {
	return d.width, d.height
}

// LoadDataset reads a zip archive of CT slice images and returns the decoded
// series. Image entries are filtered by extension (PNG, JPEG, TIFF), sorted
// by the numeric part of their filenames and decoded into memory. An archive
// with no decodable slices is a load failure.
func LoadDataset(archivePath string) (*Dataset, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset archive %s: %v", archivePath, err)
	}
	defer reader.Close()

	// Filter image entries. Archives exported from scanner consoles often
	// carry directory entries and metadata files alongside the slices.
	var entries []*zip.File
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
			entries = append(entries, file)
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no slice images found in archive %s", archivePath)
	}

	// Sort by the numeric component of the filename so the series keeps
	// its acquisition order regardless of zero padding.
	sort.Slice(entries, func(i, j int) bool {
		return extractNumber(entries[i].Name) < extractNumber(entries[j].Name)
	})

	ds := &Dataset{}
	for _, entry := range entries {
		img, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to decode slice %s: %v", entry.Name, err)
		}

		// All slices must share the dimensions of the first one.
		bounds := img.Bounds()
		if len(ds.slices) == 0 {
			ds.width = bounds.Dx()
			ds.height = bounds.Dy()
		} else if bounds.Dx() != ds.width || bounds.Dy() != ds.height {
			return nil, fmt.Errorf("slice %s has dimensions %dx%d, expected %dx%d",
				entry.Name, bounds.Dx(), bounds.Dy(), ds.width, ds.height)
		}

		ds.slices = append(ds.slices, img)
	}

	return ds, nil
}

// decodeEntry decodes a single archive entry into an image.
func decodeEntry(entry *zip.File) (image.Image, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// extractNumber extracts the numeric part of a filename for ordering.
// Filenames without digits sort first.
func extractNumber(name string) int {
	base := filepath.Base(name)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		if num, err := strconv.Atoi(numStr); err == nil {
			return num
		}
	}
	return 0
}

// huAt returns the CT number at pixel (x, y) of the given slice. Color
// images are collapsed to 16-bit grayscale before rescaling.
func (d *Dataset) huAt(sliceIdx, x, y int) float64 {
	img := d.slices[sliceIdx]
	bounds := img.Bounds()
	r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

	// Luma-weighted grayscale in the 16-bit range, then shift to HU.
	gray := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return gray/16.0 - huRescaleOffset
}

// Package presentation converts the analyzer's raw results record into
// renderer-agnostic artifacts: ordered summary rows for tabular display,
// named plot descriptors for graphical display, and rendered report images
// for document export. All conversions are tolerant of partially-populated
// records: absent modules are omitted, never an error.
package presentation

import (
	"sync"

	"ctqa/pkg/catphan"
)

// Default dimensions of the print-oriented rendering path. Report images are
// rendered larger than interactive charts since they target file-quality
// output.
const (
	defaultReportWidth  = 900
	defaultReportHeight = 600
)

// Row is one label/value line of the summary table. A row with both fields
// empty is a section separator.
type Row struct {
	Label string
	Value string
}

// Bundle wraps one analysis results record and derives its presentation
// artifacts on demand. Report images are rendered lazily and cached, since
// rendering is expensive and not every surface is used in every session.
// A Bundle is owned by the interactive side and is not safe for concurrent
// use with a still-running job producing the same record.
type Bundle struct {
	results *catphan.Results

	reportWidth  int
	reportHeight int

	mu     sync.Mutex
	images [][]byte
}

// NewBundle creates a presentation bundle over the given results record.
func NewBundle(results *catphan.Results) *Bundle {
	return &Bundle{
		results:      results,
		reportWidth:  defaultReportWidth,
		reportHeight: defaultReportHeight,
	}
}

// SetReportSize overrides the dimensions of the print-oriented rendering
// path. Invalidates any cached report images.
func (b *Bundle) SetReportSize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width > 0 {
		b.reportWidth = width
	}
	if height > 0 {
		b.reportHeight = height
	}
	b.images = nil
}

// Results exposes the underlying analyzed results record.
func (b *Bundle) Results() *catphan.Results {
	return b.results
}

// mtfPresent reports whether the spatial resolution module carries enough
// data to present. Summary rows and plot descriptors share this predicate so
// a degenerate record never appears on one surface and not the other.
func mtfPresent(m *catphan.MTFModule) bool {
	return m != nil && len(m.LpMM) > 1 && len(m.LpMM) == len(m.MTF) && len(m.Thresholds) > 0
}

package presentation

// PlotKind selects the rendering primitive for a descriptor.
type PlotKind int

const (
	// PlotScatter renders series as unconnected points.
	PlotScatter PlotKind = iota

	// PlotBars renders a bar per labeled value.
	PlotBars

	// PlotCurve renders series as connected lines.
	PlotCurve
)

// Series is one data series within a plot descriptor.
type Series struct {
	// Name is the legend label.
	Name string

	// X and Y are the sample coordinates, same length.
	X []float64
	Y []float64

	// Dashed renders the series with a dashed stroke (reference lines).
	Dashed bool

	// PointsOnly suppresses the connecting stroke.
	PointsOnly bool
}

// BarValue is one bar of a PlotBars descriptor.
type BarValue struct {
	Label string
	Value float64
}

// PlotDescriptor is a renderer-agnostic specification of one module plot.
type PlotDescriptor struct {
	// Name is the stable module identifier, e.g. "mtf".
	Name string

	// Title, XLabel and YLabel are the display strings.
	Title  string
	XLabel string
	YLabel string

	Kind   PlotKind
	Series []Series
	Bars   []BarValue

	// RefLines are horizontal reference levels drawn dashed across the
	// full x-range.
	RefLines []float64
}

// PlotDescriptors derives one plot specification per populated module, in
// fixed module order: linearity, uniformity, MTF, low contrast. Absent
// modules yield no descriptor.
func (b *Bundle) PlotDescriptors() []PlotDescriptor {
	var descriptors []PlotDescriptor

	if m := b.results.HULinearity; m != nil && len(m.ROIs) > 0 {
		nominal := make([]float64, len(m.ROIs))
		measured := make([]float64, len(m.ROIs))
		minHU, maxHU := m.ROIs[0].NominalHU, m.ROIs[0].NominalHU
		for i, roi := range m.ROIs {
			nominal[i] = roi.NominalHU
			measured[i] = roi.MeasuredHU
			if roi.NominalHU < minHU {
				minHU = roi.NominalHU
			}
			if roi.NominalHU > maxHU {
				maxHU = roi.NominalHU
			}
		}

		descriptors = append(descriptors, PlotDescriptor{
			Name:   "hu_linearity",
			Title:  "HU Linearity",
			XLabel: "Nominal HU",
			YLabel: "Measured HU",
			Kind:   PlotScatter,
			Series: []Series{
				{Name: "Expected", X: []float64{minHU, maxHU}, Y: []float64{minHU, maxHU}, Dashed: true},
				{Name: "Measured", X: nominal, Y: measured, PointsOnly: true},
			},
		})
	}

	if m := b.results.Uniformity; m != nil && len(m.ROIs) > 0 {
		bars := make([]BarValue, len(m.ROIs))
		for i, roi := range m.ROIs {
			bars[i] = BarValue{Label: roi.Position, Value: roi.HU}
		}

		descriptors = append(descriptors, PlotDescriptor{
			Name:   "uniformity",
			Title:  "HU Uniformity",
			XLabel: "ROI Position",
			YLabel: "HU",
			Kind:   PlotBars,
			Bars:   bars,
		})
	}

	if m := b.results.MTF; mtfPresent(m) {
		descriptors = append(descriptors, PlotDescriptor{
			Name:   "mtf",
			Title:  "Modulation Transfer Function",
			XLabel: "Line pairs/mm",
			YLabel: "MTF",
			Kind:   PlotCurve,
			Series: []Series{
				{Name: "MTF", X: m.LpMM, Y: m.MTF},
			},
			RefLines: []float64{0.5, 0.1},
		})
	}

	if m := b.results.LowContrast; m != nil && len(m.ROIs) > 0 {
		x := make([]float64, len(m.ROIs))
		y := make([]float64, len(m.ROIs))
		for i, roi := range m.ROIs {
			x[i] = float64(i + 1)
			y[i] = roi.Contrast
		}

		descriptors = append(descriptors, PlotDescriptor{
			Name:   "low_contrast",
			Title:  "Low Contrast",
			XLabel: "ROI #",
			YLabel: "Contrast",
			Kind:   PlotScatter,
			Series: []Series{
				{Name: "Contrast", X: x, Y: y, PointsOnly: true},
			},
		})
	}

	return descriptors
}

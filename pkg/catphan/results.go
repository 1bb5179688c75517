package catphan

import "ctqa/pkg/phantom"

// Results is the output record of one measurement pass. The schema is
// partially populated: each module pointer is nil when the corresponding
// phantom module could not be measured on the loaded series. Consumers must
// treat every module as optional and never fail on absence.
type Results struct {
	// Kind is the phantom model the analysis was run against.
	Kind phantom.Kind

	// HULinearity holds the CTP404 linearity module measurements, or nil.
	HULinearity *HULinearityModule

	// Uniformity holds the CTP486 uniformity module measurements, or nil.
	Uniformity *UniformityModule

	// MTF holds the CTP528 spatial resolution measurements, or nil.
	MTF *MTFModule

	// LowContrast holds the CTP515 low-contrast measurements, or nil.
	// Always nil for CatPhan 503, which has no low-contrast module.
	LowContrast *LowContrastModule
}

// MaterialROI is a single HU linearity measurement for one insert material.
type MaterialROI struct {
	// Material is the insert material name, e.g. "Acrylic".
	Material string

	// NominalHU is the expected CT number for the material.
	NominalHU float64

	// MeasuredHU is the mean CT number sampled over the insert ROI.
	MeasuredHU float64
}

// HULinearityModule holds the per-material HU linearity measurements in a
// fixed material order.
type HULinearityModule struct {
	ROIs []MaterialROI
}

// UniformityROI is the mean CT number at one uniformity sampling position.
type UniformityROI struct {
	// Position names the sampling location, e.g. "Center" or "Top".
	Position string

	// HU is the mean CT number over the ROI.
	HU float64
}

// UniformityModule holds the uniformity ROIs plus the aggregate index.
type UniformityModule struct {
	ROIs []UniformityROI

	// Index is the aggregate uniformity index: the largest percentage
	// deviation of any edge ROI from the center ROI, on the water-offset
	// scale (HU + 1000).
	Index float64
}

// MTFThreshold is the spatial frequency at which the MTF curve crosses a
// fixed percentage of its peak.
type MTFThreshold struct {
	// Percent is the threshold level, e.g. 50 for MTF-50%.
	Percent int

	// LpPerMM is the interpolated spatial frequency in line pairs per mm.
	LpPerMM float64
}

// MTFModule holds the sampled MTF curve and the fixed-threshold crossings.
type MTFModule struct {
	// LpMM are the sampled spatial frequencies, ascending.
	LpMM []float64

	// MTF are the normalized modulation values for each frequency, with
	// the first sample normalized to 1.0.
	MTF []float64

	// Thresholds are the crossings at the fixed percentage levels, in
	// descending level order.
	Thresholds []MTFThreshold
}

// LowContrastROI is the measured contrast of one low-contrast insert.
type LowContrastROI struct {
	// Name identifies the insert, e.g. "ROI 1".
	Name string

	// Contrast is the insert contrast relative to the local background.
	Contrast float64
}

// LowContrastModule holds the low-contrast ROIs plus the aggregate
// visibility score.
type LowContrastModule struct {
	ROIs []LowContrastROI

	// Visibility is the aggregate contrast-to-noise visibility score over
	// all inserts.
	Visibility float64
}

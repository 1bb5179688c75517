package catphan

import "ctqa/pkg/phantom"

// materialSpec places one HU linearity insert on the CTP404 module slice.
// Positions are polar: an angle in degrees (0 = +x, counter-clockwise) and a
// radial distance expressed as a fraction of the half-width of the slice.
type materialSpec struct {
	name      string
	angleDeg  float64
	distFrac  float64
	nominalHU float64
}

// roiSpec places one uniformity sampling position on the CTP486 module slice.
type roiSpec struct {
	position string
	angleDeg float64
	distFrac float64
}

// geometry describes the module layout of one CatPhan hardware model.
// Module offsets are slice counts relative to the center slice of the
// series; the phantom is assumed centered in the scanned range.
type geometry struct {
	// minSlices is the shortest series that can cover all modules of the
	// model. Shorter series fail at load time.
	minSlices int

	// Module slice offsets from the series center.
	ctp404Offset int
	ctp486Offset int
	ctp528Offset int
	ctp515Offset int

	// hasLowContrast is false for models without a CTP515 module.
	hasLowContrast bool

	// materials are the linearity inserts of the model.
	materials []materialSpec

	// uniformityROIs are the CTP486 sampling positions.
	uniformityROIs []roiSpec

	// roiRadiusFrac is the ROI radius as a fraction of the half-width.
	roiRadiusFrac float64

	// lowContrastCount is the number of supra-slice low-contrast inserts.
	lowContrastCount int
}

// Shared ROI layouts. The insert carousel and uniformity positions are the
// same across the supported models; the models differ in module spacing and
// in whether the low-contrast module is present.
var (
	standardMaterials = []materialSpec{
		{name: "Air", angleDeg: 90, distFrac: 0.6, nominalHU: -1000},
		{name: "PMP", angleDeg: 150, distFrac: 0.6, nominalHU: -196},
		{name: "LDPE", angleDeg: 210, distFrac: 0.6, nominalHU: -104},
		{name: "Polystyrene", angleDeg: 270, distFrac: 0.6, nominalHU: -47},
		{name: "Acrylic", angleDeg: 330, distFrac: 0.6, nominalHU: 115},
		{name: "Delrin", angleDeg: 30, distFrac: 0.6, nominalHU: 365},
		{name: "Teflon", angleDeg: 60, distFrac: 0.6, nominalHU: 990},
	}

	standardUniformityROIs = []roiSpec{
		{position: "Center", angleDeg: 0, distFrac: 0},
		{position: "Top", angleDeg: 90, distFrac: 0.75},
		{position: "Right", angleDeg: 0, distFrac: 0.75},
		{position: "Bottom", angleDeg: 270, distFrac: 0.75},
		{position: "Left", angleDeg: 180, distFrac: 0.75},
	}
)

// geometries is the closed registry of per-model layouts.
var geometries = map[phantom.Kind]geometry{
	phantom.CatPhan503: {
		minSlices:      9,
		ctp404Offset:   0,
		ctp486Offset:   -4,
		ctp528Offset:   4,
		hasLowContrast: false,
		materials:      standardMaterials,
		uniformityROIs: standardUniformityROIs,
		roiRadiusFrac:  0.06,
	},
	phantom.CatPhan504: {
		minSlices:        13,
		ctp404Offset:     0,
		ctp486Offset:     -6,
		ctp528Offset:     3,
		ctp515Offset:     6,
		hasLowContrast:   true,
		materials:        standardMaterials,
		uniformityROIs:   standardUniformityROIs,
		roiRadiusFrac:    0.06,
		lowContrastCount: 6,
	},
	phantom.CatPhan600: {
		minSlices:        15,
		ctp404Offset:     0,
		ctp486Offset:     -7,
		ctp528Offset:     4,
		ctp515Offset:     7,
		hasLowContrast:   true,
		materials:        standardMaterials,
		uniformityROIs:   standardUniformityROIs,
		roiRadiusFrac:    0.06,
		lowContrastCount: 6,
	},
	phantom.CatPhan604: {
		minSlices:        13,
		ctp404Offset:     0,
		ctp486Offset:     -6,
		ctp528Offset:     3,
		ctp515Offset:     6,
		hasLowContrast:   true,
		materials:        standardMaterials,
		uniformityROIs:   standardUniformityROIs,
		roiRadiusFrac:    0.06,
		lowContrastCount: 9,
	},
}

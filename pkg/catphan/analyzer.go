package catphan

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"ctqa/pkg/phantom"
)

// mtfThresholdLevels are the fixed percentage levels reported for spatial
// resolution, in descending order.
var mtfThresholdLevels = []int{80, 50, 30, 10}

// mtfFrequencies are the sampled line-pair group frequencies in lp/mm,
// corresponding to the first eight gauges of the CTP528 module.
var mtfFrequencies = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

// Phantom is a loaded phantom series bound to the geometry of one hardware
// model. It is the analyzed-phantom object referenced by an analysis result;
// it is not safe for concurrent use from more than one goroutine.
type Phantom struct {
	kind phantom.Kind
	ds   *Dataset
	geom geometry
}

// Kind returns the phantom model the series was loaded as.
func (p *Phantom) Kind() phantom.Kind {
	return p.kind
}

// Dataset returns the underlying slice series.
func (p *Phantom) Dataset() *Dataset {
	return p.ds
}

// newPhantom loads the archive and validates it against the geometry of the
// given model. A series too short to cover the model's modules is treated as
// a wrong-geometry load failure.
func newPhantom(kind phantom.Kind, archivePath string) (*Phantom, error) {
	geom, ok := geometries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v", phantom.ErrUnsupportedPhantom, kind)
	}

	ds, err := LoadDataset(archivePath)
	if err != nil {
		return nil, err
	}

	if ds.NumSlices() < geom.minSlices {
		return nil, fmt.Errorf("series has %d slices, %s geometry requires at least %d",
			ds.NumSlices(), kind.Label(), geom.minSlices)
	}

	return &Phantom{kind: kind, ds: ds, geom: geom}, nil
}

// Analyze runs the measurement pass over the loaded series and returns the
// results record. Each module is measured independently; a module whose
// slice falls outside the series or whose signal is unusable is omitted from
// the record rather than failing the pass. The pass fails only when no
// module at all could be measured.
func (p *Phantom) Analyze() (*Results, error) {
	results := &Results{Kind: p.kind}

	results.HULinearity = p.measureLinearity()
	results.Uniformity = p.measureUniformity()
	results.MTF = p.measureMTF()
	if p.geom.hasLowContrast {
		results.LowContrast = p.measureLowContrast()
	}

	if results.HULinearity == nil && results.Uniformity == nil &&
		results.MTF == nil && results.LowContrast == nil {
		return nil, fmt.Errorf("no phantom modules detected in %s series", p.kind.Label())
	}

	return results, nil
}

// moduleSlice resolves a module offset to a slice index, relative to the
// series center.
func (p *Phantom) moduleSlice(offset int) (int, bool) {
	idx := p.ds.NumSlices()/2 + offset
	if idx < 0 || idx >= p.ds.NumSlices() {
		return 0, false
	}
	return idx, true
}

// measureLinearity samples the CTP404 insert carousel and returns the
// per-material HU measurements.
func (p *Phantom) measureLinearity() *HULinearityModule {
	sliceIdx, ok := p.moduleSlice(p.geom.ctp404Offset)
	if !ok {
		return nil
	}

	module := &HULinearityModule{}
	for _, mat := range p.geom.materials {
		values := p.sampleROI(sliceIdx, mat.angleDeg, mat.distFrac)
		if len(values) == 0 {
			continue
		}
		module.ROIs = append(module.ROIs, MaterialROI{
			Material:   mat.name,
			NominalHU:  mat.nominalHU,
			MeasuredHU: stat.Mean(values, nil),
		})
	}

	if len(module.ROIs) == 0 {
		return nil
	}
	return module
}

// measureUniformity samples the CTP486 positions and computes the aggregate
// uniformity index: the largest percentage deviation of an edge ROI from the
// center ROI on the water-offset scale.
func (p *Phantom) measureUniformity() *UniformityModule {
	sliceIdx, ok := p.moduleSlice(p.geom.ctp486Offset)
	if !ok {
		return nil
	}

	module := &UniformityModule{}
	var center float64
	for _, roi := range p.geom.uniformityROIs {
		values := p.sampleROI(sliceIdx, roi.angleDeg, roi.distFrac)
		if len(values) == 0 {
			continue
		}
		mean := stat.Mean(values, nil)
		module.ROIs = append(module.ROIs, UniformityROI{Position: roi.position, HU: mean})
		if roi.position == "Center" {
			center = mean
		}
	}

	if len(module.ROIs) == 0 {
		return nil
	}

	denom := math.Abs(center + 1000.0)
	if denom < 1.0 {
		denom = 1.0
	}
	maxDev := 0.0
	for _, roi := range module.ROIs {
		if roi.Position == "Center" {
			continue
		}
		dev := math.Abs(roi.HU-center) / denom * 100.0
		if dev > maxDev {
			maxDev = dev
		}
	}
	module.Index = maxDev

	return module
}

// measureMTF estimates the modulation transfer function from the CTP528
// line-pair gauges. The modulation of each gauge is taken as the standard
// deviation of its ROI; the curve is normalized to the first gauge and the
// fixed threshold crossings are linearly interpolated.
func (p *Phantom) measureMTF() *MTFModule {
	sliceIdx, ok := p.moduleSlice(p.geom.ctp528Offset)
	if !ok {
		return nil
	}

	modulations := make([]float64, 0, len(mtfFrequencies))
	step := 360.0 / float64(len(mtfFrequencies))
	for i := range mtfFrequencies {
		values := p.sampleROI(sliceIdx, 90.0-float64(i)*step, 0.45)
		if len(values) < 2 {
			return nil
		}
		modulations = append(modulations, stat.StdDev(values, nil))
	}

	// A flat module slice carries no resolution signal; omit the module.
	if modulations[0] <= 0 {
		return nil
	}

	module := &MTFModule{LpMM: mtfFrequencies}
	module.MTF = make([]float64, len(modulations))
	for i, m := range modulations {
		module.MTF[i] = m / modulations[0]
	}

	for _, level := range mtfThresholdLevels {
		module.Thresholds = append(module.Thresholds, MTFThreshold{
			Percent: level,
			LpPerMM: crossingFrequency(module.LpMM, module.MTF, float64(level)/100.0),
		})
	}

	return module
}

// crossingFrequency finds the first frequency at which the curve drops to
// the given level, interpolating linearly between samples. Curves that never
// drop below the level clamp to the highest sampled frequency.
func crossingFrequency(freqs, curve []float64, level float64) float64 {
	if curve[0] <= level {
		return freqs[0]
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] <= level {
			// Interpolate between sample i-1 and i.
			span := curve[i-1] - curve[i]
			if span <= 0 {
				return freqs[i]
			}
			frac := (curve[i-1] - level) / span
			return freqs[i-1] + frac*(freqs[i]-freqs[i-1])
		}
	}
	return freqs[len(freqs)-1]
}

// measureLowContrast samples the CTP515 supra-slice inserts. The contrast of
// each insert is its deviation from a paired local background ROI on the
// water-offset scale; the visibility score is the sum of insert contrasts.
func (p *Phantom) measureLowContrast() *LowContrastModule {
	sliceIdx, ok := p.moduleSlice(p.geom.ctp515Offset)
	if !ok {
		return nil
	}

	module := &LowContrastModule{}
	count := p.geom.lowContrastCount
	if count == 0 {
		return nil
	}

	step := 360.0 / float64(count)
	for i := 0; i < count; i++ {
		angle := 90.0 - float64(i)*step
		insert := p.sampleROI(sliceIdx, angle, 0.35)
		background := p.sampleROI(sliceIdx, angle+step/2, 0.35)
		if len(insert) == 0 || len(background) == 0 {
			continue
		}

		insertMean := stat.Mean(insert, nil)
		bgMean := stat.Mean(background, nil)
		denom := math.Abs(bgMean + 1000.0)
		if denom < 1.0 {
			denom = 1.0
		}

		contrast := math.Abs(insertMean-bgMean) / denom
		module.ROIs = append(module.ROIs, LowContrastROI{
			Name:     fmt.Sprintf("ROI %d", i+1),
			Contrast: contrast,
		})
		module.Visibility += contrast
	}

	if len(module.ROIs) == 0 {
		return nil
	}
	return module
}

// sampleROI collects the CT numbers inside a circular ROI placed in polar
// coordinates on the given slice: angle in degrees (0 = +x, counter-
// clockwise), distance as a fraction of the slice half-width.
func (p *Phantom) sampleROI(sliceIdx int, angleDeg, distFrac float64) []float64 {
	width, height := p.ds.Bounds()
	halfWidth := float64(minInt(width, height)) / 2.0

	radius := p.geom.roiRadiusFrac * halfWidth
	if radius < 1.0 {
		radius = 1.0
	}

	angle := angleDeg * math.Pi / 180.0
	cx := float64(width)/2.0 + distFrac*halfWidth*math.Cos(angle)
	cy := float64(height)/2.0 - distFrac*halfWidth*math.Sin(angle)

	var values []float64
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if x < 0 || y < 0 || x >= width || y >= height {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			values = append(values, p.ds.huAt(sliceIdx, x, y))
		}
	}

	return values
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

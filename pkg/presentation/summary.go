package presentation

import "fmt"

// FormatHU renders a CT number with fixed two-decimal precision.
func FormatHU(value float64) string {
	return fmt.Sprintf("%.2f HU", value)
}

// FormatLpMM renders a spatial frequency with fixed two-decimal precision.
func FormatLpMM(value float64) string {
	return fmt.Sprintf("%.2f lp/mm", value)
}

// FormatContrast renders a contrast or visibility value with fixed
// four-decimal precision.
func FormatContrast(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

// SummaryRows flattens the results record into the ordered label/value rows
// of the summary table: phantom type header, then one block per present
// module in fixed order (HU linearity, uniformity, spatial resolution, low
// contrast), with blank rows separating blocks. Absent modules contribute no
// rows.
func (b *Bundle) SummaryRows() []Row {
	blocks := [][]Row{
		{{Label: "Phantom Type:", Value: b.results.Kind.Label()}},
	}

	if m := b.results.HULinearity; m != nil && len(m.ROIs) > 0 {
		block := []Row{{Label: "HU Linearity:"}}
		for _, roi := range m.ROIs {
			block = append(block, Row{
				Label: fmt.Sprintf("  %s (nominal %s):", roi.Material, FormatHU(roi.NominalHU)),
				Value: FormatHU(roi.MeasuredHU),
			})
		}
		blocks = append(blocks, block)
	}

	if m := b.results.Uniformity; m != nil && len(m.ROIs) > 0 {
		block := []Row{{Label: "HU Uniformity:"}}
		for _, roi := range m.ROIs {
			block = append(block, Row{
				Label: fmt.Sprintf("  %s:", roi.Position),
				Value: FormatHU(roi.HU),
			})
		}
		block = append(block, Row{
			Label: "Uniformity Index:",
			Value: fmt.Sprintf("%.2f", m.Index),
		})
		blocks = append(blocks, block)
	}

	if m := b.results.MTF; mtfPresent(m) {
		block := []Row{{Label: "Spatial Resolution:"}}
		for _, th := range m.Thresholds {
			block = append(block, Row{
				Label: fmt.Sprintf("  MTF %d%%:", th.Percent),
				Value: FormatLpMM(th.LpPerMM),
			})
		}
		blocks = append(blocks, block)
	}

	if m := b.results.LowContrast; m != nil && len(m.ROIs) > 0 {
		block := []Row{{Label: "Low Contrast:"}}
		for _, roi := range m.ROIs {
			block = append(block, Row{
				Label: fmt.Sprintf("  %s:", roi.Name),
				Value: FormatContrast(roi.Contrast),
			})
		}
		block = append(block, Row{
			Label: "Low Contrast Visibility:",
			Value: FormatContrast(m.Visibility),
		})
		blocks = append(blocks, block)
	}

	var rows []Row
	for i, block := range blocks {
		if i > 0 {
			rows = append(rows, Row{})
		}
		rows = append(rows, block...)
	}
	return rows
}

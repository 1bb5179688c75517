package presentation

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// pointStyle returns a style that renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// dashedStyle returns a thin dashed stroke for reference lines.
func dashedStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth:     1,
		StrokeColor:     col,
		StrokeDashArray: []float64{5.0, 5.0},
	}
}

// seriesColors cycles the palette for data series.
var seriesColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
}

// Render rasterizes a plot descriptor to a PNG image of the given size.
func Render(d PlotDescriptor, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch d.Kind {
	case PlotBars:
		err = renderBars(d, width, height, &buf)
	default:
		err = renderXY(d, width, height, &buf)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to render %s plot: %v", d.Name, err)
	}
	return buf.Bytes(), nil
}

// renderBars draws a PlotBars descriptor as a bar chart.
func renderBars(d PlotDescriptor, width, height int, buf *bytes.Buffer) error {
	bars := make([]chart.Value, len(d.Bars))
	var minV, maxV float64
	if len(d.Bars) > 0 {
		minV, maxV = d.Bars[0].Value, d.Bars[0].Value
	}
	for i, bar := range d.Bars {
		bars[i] = chart.Value{Label: bar.Label, Value: bar.Value}
		if bar.Value < minV {
			minV = bar.Value
		}
		if bar.Value > maxV {
			maxV = bar.Value
		}
	}

	// All-equal values leave go-chart with a zero range; pad it so a
	// perfectly uniform measurement still renders.
	yAxis := chart.YAxis{Name: d.YLabel}
	if minV == maxV {
		yAxis.Range = &chart.ContinuousRange{Min: minV - 1, Max: maxV + 1}
	}

	ch := chart.BarChart{
		Title:      d.Title,
		Width:      width,
		Height:     height,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		YAxis:      yAxis,
		Bars:       bars,
	}

	return ch.Render(chart.PNG, buf)
}

// renderXY draws scatter and curve descriptors, including dashed reference
// series and horizontal reference levels.
func renderXY(d PlotDescriptor, width, height int, buf *bytes.Buffer) error {
	var series []chart.Series
	colorIdx := 0

	// Single-x data (one ROI) and value-free spreads leave go-chart with a
	// zero range; pad the affected axis so the plot still renders.
	minX, maxX := xRange(d)
	xAxis := chart.XAxis{Name: d.XLabel}
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
		xAxis.Range = &chart.ContinuousRange{Min: minX, Max: maxX}
	}

	minY, maxY := yRange(d)
	yAxis := chart.YAxis{Name: d.YLabel}
	if minY == maxY {
		yAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}

	for _, s := range d.Series {
		col := seriesColors[colorIdx%len(seriesColors)]
		colorIdx++

		style := chart.Style{StrokeWidth: 2, StrokeColor: col}
		if s.PointsOnly {
			style = pointStyle(col)
		} else if s.Dashed {
			style = dashedStyle(chart.ColorRed)
		}

		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style:   style,
		})
	}

	for i, level := range d.RefLines {
		col := chart.ColorRed
		if i%2 == 1 {
			col = chart.ColorGreen
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%.0f%%", level*100),
			XValues: []float64{minX, maxX},
			YValues: []float64{level, level},
			Style:   dashedStyle(col),
		})
	}

	ch := chart.Chart{
		Title:      d.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, buf)
}

// xRange returns the combined x extent of all data series in the
// descriptor, used to span reference lines across the plot.
func xRange(d PlotDescriptor) (minX, maxX float64) {
	first := true
	for _, s := range d.Series {
		for _, x := range s.X {
			if first {
				minX, maxX = x, x
				first = false
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	if first {
		return 0, 1
	}
	return minX, maxX
}

// yRange returns the combined y extent of all data series and reference
// levels in the descriptor.
func yRange(d PlotDescriptor) (minY, maxY float64) {
	first := true
	observe := func(y float64) {
		if first {
			minY, maxY = y, y
			first = false
			return
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	for _, s := range d.Series {
		for _, y := range s.Y {
			observe(y)
		}
	}
	for _, level := range d.RefLines {
		observe(level)
	}

	if first {
		return 0, 1
	}
	return minY, maxY
}

// ReportImages renders one file-quality PNG per populated module, in module
// order. This is the print-oriented path used by the report exporter, kept
// separate from interactive chart sizing. Results are cached on the bundle;
// absent modules contribute no image and are never an error.
func (b *Bundle) ReportImages() ([][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.images != nil {
		return b.images, nil
	}

	descriptors := b.PlotDescriptors()
	images := make([][]byte, 0, len(descriptors))
	for _, d := range descriptors {
		img, err := Render(d, b.reportWidth, b.reportHeight)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	b.images = images
	return images, nil
}

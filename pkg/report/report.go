// Package report assembles an analysis result into one exportable document:
// a title, an ISO-8601 date stamp, the summary-rows table and one rendered
// image per populated module, written as an xlsx workbook. The exported
// table can be read back, which keeps the document verifiable against the
// rows it was built from.
package report

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/xuri/excelize/v2"

	"ctqa/pkg/presentation"
)

const (
	// tableSheet holds the title, date and summary table.
	tableSheet = "Report"

	// plotSheet holds the module images.
	plotSheet = "Plots"

	// tableHeader is the section label above the summary table.
	tableHeader = "Analysis Results"

	// tableStartRow is the first worksheet row of the summary table:
	// title, date, blank, section header, then the rows.
	tableStartRow = 5

	// plotRowStride is the number of worksheet rows reserved per embedded
	// image so images do not overlap.
	plotRowStride = 32
)

// Exporter writes analysis reports.
type Exporter struct {
	// Title is the document title placed on the first row.
	Title string
}

// NewExporter creates an exporter with the given document title.
func NewExporter(title string) *Exporter {
	return &Exporter{Title: title}
}

// Export writes the report to path: title, date stamp, the summary table and
// the given module images. Any write failure is returned as a single error;
// a failed export never leaves a partial in-memory state behind.
func (e *Exporter) Export(path string, rows []presentation.Row, images [][]byte) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the table sheet.
	if err := f.SetSheetName(f.GetSheetName(0), tableSheet); err != nil {
		return fmt.Errorf("failed to prepare report sheet: %v", err)
	}

	if err := f.SetCellValue(tableSheet, "A1", e.Title); err != nil {
		return fmt.Errorf("failed to write report title: %v", err)
	}
	if err := f.SetCellValue(tableSheet, "A2", time.Now().Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to write report date: %v", err)
	}
	if err := f.SetCellValue(tableSheet, "A4", tableHeader); err != nil {
		return fmt.Errorf("failed to write table header: %v", err)
	}

	for i, row := range rows {
		rowNum := tableStartRow + i
		// Blank separator rows are left as empty worksheet rows.
		if row.Label == "" && row.Value == "" {
			continue
		}
		if err := f.SetCellValue(tableSheet, fmt.Sprintf("A%d", rowNum), row.Label); err != nil {
			return fmt.Errorf("failed to write table row %d: %v", i, err)
		}
		if err := f.SetCellValue(tableSheet, fmt.Sprintf("B%d", rowNum), row.Value); err != nil {
			return fmt.Errorf("failed to write table row %d: %v", i, err)
		}
	}

	if len(images) > 0 {
		if _, err := f.NewSheet(plotSheet); err != nil {
			return fmt.Errorf("failed to create plot sheet: %v", err)
		}
		for i, img := range images {
			cell := fmt.Sprintf("A%d", 1+i*plotRowStride)
			err := f.AddPictureFromBytes(plotSheet, cell, &excelize.Picture{
				Extension: ".png",
				File:      img,
			})
			if err != nil {
				return fmt.Errorf("failed to embed plot %d: %v", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write report to %s: %v", path, err)
	}
	return nil
}

// ReadTable reads the summary table back from an exported report, returning
// the rows in the order they were written. Interior blank separator rows are
// preserved.
func ReadTable(path string) ([]presentation.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %v", path, err)
	}
	defer f.Close()

	sheetRows, err := f.GetRows(tableSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read report table: %v", err)
	}

	var rows []presentation.Row
	for i := tableStartRow - 1; i < len(sheetRows); i++ {
		cols := sheetRows[i]
		row := presentation.Row{}
		if len(cols) > 0 {
			row.Label = cols[0]
		}
		if len(cols) > 1 {
			row.Value = cols[1]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// OpenInViewer hands the exported report to the platform's default document
// viewer. Best effort: the viewer process is started, not awaited.
func OpenInViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open report in viewer: %v", err)
	}
	return nil
}

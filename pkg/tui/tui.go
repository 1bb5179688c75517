// Package tui renders the command-line surface: styled summary tables,
// progress indication for in-flight analysis jobs, and error reporting.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"ctqa/pkg/presentation"
)

// Colors
var (
	accent  = lipgloss.Color("#FF5555")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	errorStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintHeader prints the tool banner.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  CTQA") + mutedStyle.Render(" v"+version))
	fmt.Println(mutedStyle.Render("  CT phantom quality-assurance analysis"))
	fmt.Println()
}

// NewProgressSpinner creates an indeterminate spinner for a running analysis
// job. The description is updated from worker progress events.
func NewProgressSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// PrintSummary prints the analysis summary rows as an aligned two-column
// table, preserving blank separator rows.
func PrintSummary(rows []presentation.Row) {
	width := 0
	for _, row := range rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}

	fmt.Println()
	for _, row := range rows {
		if row.Label == "" && row.Value == "" {
			fmt.Println()
			continue
		}
		fmt.Printf("  %s%s  %s\n", labelStyle.Render(row.Label), labelPad(row.Label, width), row.Value)
	}
	fmt.Println()
}

// labelPad compensates for the ANSI escape bytes lipgloss adds, which would
// otherwise break %-*s column alignment.
func labelPad(label string, width int) string {
	pad := width - len(label)
	if pad <= 0 {
		return ""
	}
	out := make([]byte, pad)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// PrintSuccess prints a completion line.
func PrintSuccess(message string) {
	fmt.Println(successStyle.Render("  ✓ " + message))
}

// PrintError prints a single styled failure line.
func PrintError(message string) {
	fmt.Println(errorStyle.Render("  ✗ " + message))
}

// PrintInfo prints a muted informational line.
func PrintInfo(message string) {
	fmt.Println(mutedStyle.Render("  " + message))
}

// CTQA - CT phantom quality-assurance analysis.
// Analyzes CatPhan scan archives and exports QA reports.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ctqa/internal/session"
	"ctqa/pkg/analysis"
	"ctqa/pkg/config"
	"ctqa/pkg/phantom"
	"ctqa/pkg/presentation"
	"ctqa/pkg/report"
	"ctqa/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	inputFile   string
	phantomName string
	reportFile  string
	plotsDir    string
	openReport  bool
	configFile  string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ctqa",
	Short: "CTQA - CT phantom quality-assurance analysis",
	Long: `CTQA analyzes CT scans of CatPhan phantoms for radiotherapy physics QA.

A run loads a zip archive of CT slice images, measures the phantom modules
(HU linearity, uniformity, spatial resolution, low-contrast detectability)
and prints a summary table. Results can be exported as a report document
containing the table and one plot per measured module.`,
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CT phantom dataset",
	Long: `Analyze a zip archive of CT slice images as the given phantom model.

Examples:
  ctqa analyze -i scan.zip -p catphan504
  ctqa analyze -i scan.zip -p "CatPhan 600" --report qa_report.xlsx
  ctqa analyze -i scan.zip -p 504 --report qa_report.xlsx --open`,
	RunE: runAnalyze,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the supported phantom models",
	RunE:  runKinds,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "ctqa.yaml", "Configuration file path")

	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Dataset archive path (zip of CT slices, required)")
	analyzeCmd.Flags().StringVarP(&phantomName, "phantom", "p", "", "Phantom model (see 'ctqa kinds', required)")
	analyzeCmd.Flags().StringVar(&reportFile, "report", "", "Export a report document to this path")
	analyzeCmd.Flags().StringVar(&plotsDir, "plots", "", "Write one screen-sized plot image per module to this directory")
	analyzeCmd.Flags().BoolVar(&openReport, "open", false, "Open the exported report in the default viewer")
	analyzeCmd.MarkFlagRequired("input")
	analyzeCmd.MarkFlagRequired("phantom")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(kindsCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	kind, err := phantom.ParseKind(phantomName)
	if err != nil {
		return fmt.Errorf("%v (run 'ctqa kinds' for the supported models)", err)
	}

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("dataset archive does not exist: %s", inputFile)
	}

	if verbose {
		tui.PrintHeader(version)
		tui.PrintInfo("Dataset: " + inputFile)
		tui.PrintInfo("Phantom: " + kind.Label())
	}

	// The session owns the dataset list and cached results; the worker
	// never sees it.
	sess := session.New()
	ref := sess.Register(inputFile)

	worker := analysis.NewWorker()
	events := worker.Run(ref.Path, kind)

	spinner := tui.NewProgressSpinner("Starting analysis...")
	var result *analysis.Result
	var failure string

	for ev := range events {
		switch ev.Kind {
		case analysis.EventProgress:
			spinner.Describe(ev.Message)
			spinner.Add(1)
		case analysis.EventResult:
			result = ev.Result
		case analysis.EventFailure:
			failure = ev.Message
		case analysis.EventFinished:
			spinner.Finish()
		}
	}

	if failure != "" {
		tui.PrintError("CT analysis failed")
		return fmt.Errorf("analysis failed: %s", failure)
	}

	// A failed run would have left any prior cached result untouched;
	// success replaces it wholesale.
	sess.AttachResult(ref.ID, result)

	tui.PrintSummary(result.Rows)
	warnOutOfTolerance(cfg, result)

	if plotsDir != "" {
		if err := writePlots(cfg, result, plotsDir); err != nil {
			return err
		}
		tui.PrintSuccess("Plots written to " + plotsDir)
	}

	if reportFile != "" {
		if err := exportReport(cfg, result, reportFile); err != nil {
			return err
		}
		tui.PrintSuccess("Report written to " + reportFile)

		if openReport || cfg.Report.AutoOpen {
			if err := report.OpenInViewer(reportFile); err != nil {
				tui.PrintError(err.Error())
			}
		}
	}

	return nil
}

// warnOutOfTolerance prints a warning for each linearity material whose
// measured CT number deviates from nominal by more than the configured
// tolerance. Warnings never affect the exit status.
func warnOutOfTolerance(cfg *config.Config, result *analysis.Result) {
	linearity := result.Bundle.Results().HULinearity
	if linearity == nil {
		return
	}

	for _, roi := range linearity.ROIs {
		dev := roi.MeasuredHU - roi.NominalHU
		if dev < 0 {
			dev = -dev
		}
		if dev > cfg.Analysis.HUTolerance {
			tui.PrintInfo(fmt.Sprintf("Warning: %s deviates %.1f HU from nominal (tolerance %.1f HU)",
				roi.Material, dev, cfg.Analysis.HUTolerance))
		}
	}
}

// writePlots renders one screen-sized PNG per populated module into dir,
// named after the module descriptor. Unlike the report path, these use the
// interactive chart dimensions.
func writePlots(cfg *config.Config, result *analysis.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plot directory %s: %v", dir, err)
	}

	for _, d := range result.Bundle.PlotDescriptors() {
		img, err := presentation.Render(d, cfg.Charts.Width, cfg.Charts.Height)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, d.Name+".png")
		if err := os.WriteFile(path, img, 0644); err != nil {
			return fmt.Errorf("failed to write plot %s: %v", path, err)
		}
	}

	return nil
}

// exportReport renders the module images and writes the report document.
func exportReport(cfg *config.Config, result *analysis.Result, path string) error {
	result.Bundle.SetReportSize(cfg.Report.ImageWidth, cfg.Report.ImageHeight)

	images, err := result.Bundle.ReportImages()
	if err != nil {
		return err
	}

	exporter := report.NewExporter(cfg.Report.Title)
	return exporter.Export(path, result.Rows, images)
}

func runKinds(cmd *cobra.Command, args []string) error {
	fmt.Println("Supported phantom models:")
	for _, kind := range phantom.Kinds() {
		compact := strings.ToLower(strings.ReplaceAll(kind.Label(), " ", ""))
		fmt.Printf("  %-14s (-p %s)\n", kind.Label(), compact)
	}
	return nil
}

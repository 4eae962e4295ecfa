package analyse

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/lottiescan/internal/report"
	"github.com/scan-io-git/lottiescan/pkg/shared"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
	"github.com/scan-io-git/lottiescan/pkg/shared/logger"
)

// RunOptionsAnalyse holds the arguments for the analyse command.
type RunOptionsAnalyse struct {
	InputFile     string
	ReportFormat  string
	OutputPath    string
	Gate          string
	Threads       int
	TemplatesPath string
	Title         string
	NoColor       bool
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	analyseOptions      RunOptionsAnalyse
	exampleAnalyseUsage = `  # Analysing a single animation
  lottiescan analyse /path/to/animation.json

  # Analysing every .json and .lottie file under a folder with 4 concurrent threads
  lottiescan analyse -j 4 /path/to/animations

  # Analysing remote animations
  lottiescan analyse https://cdn.example.com/intro.lottie s3://design-assets/ui/spinner.json

  # Analysing sources listed in a file, one per line
  lottiescan analyse --input-file /path/to/sources.txt

  # Writing a SARIF report to a folder
  lottiescan analyse --format sarif --output /path/to/results /path/to/animations

  # Failing a CI job when any animation uses a critical feature
  lottiescan analyse --gate 'critical == 0' /path/to/animations

  # Allowing masks but nothing else
  lottiescan analyse --gate 'features.all(f, f == "MASK")' /path/to/animation.json`
)

// AnalyseCmd represents the analyse command.
var AnalyseCmd = &cobra.Command{
	Use:                   "analyse [--format/-f FORMAT] [--output/-o PATH] [--gate EXPR] [-j THREADS_NUMBER, default=1] {--input-file/-i PATH | SOURCE...}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyseUsage,
	Short:                 "Analyses Lottie animations for runtime compatibility issues",
	Long: fmt.Sprintf(`Analyses Lottie animations for runtime compatibility issues.

A source is a local file, a folder (searched recursively for .json and .lottie files),
an http(s) URL or an s3://bucket/key URI.

Report formats:
  %s

The --gate expression is written in CEL and must evaluate to a bool. Available variables:
  critical, warning, total, occurrences  int
  features                               list of feature ids
  issues                                 list of {id, severity, count}

Exit status is 0 on success, 1 when a source could not be analysed and 2 when the gate fails.`, strings.Join(config.SupportedFormats, ", ")),
	RunE: runAnalyseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runAnalyseCommand executes the analyse command.
func runAnalyseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-analyse")
	applyConfigDefaults(cmd, &analyseOptions, AppConfig)

	if err := validateAnalyseArgs(&analyseOptions, args); err != nil {
		logger.Error("invalid analyse arguments", "error", err)
		return err
	}

	sources, err := prepareSources(&analyseOptions, args)
	if err != nil {
		logger.Error("failed to prepare sources", "error", err)
		return err
	}
	logger.Debug("prepared sources", "count", len(sources))

	a, err := newAnalyser(cmd.Context(), AppConfig, &analyseOptions, sources, logger)
	if err != nil {
		logger.Error("failed to initialise analyser", "error", err)
		return err
	}

	targets := a.run(cmd.Context(), sources)
	rep := report.New(coreVersion(), targets)

	if err := writeReport(cmd.OutOrStdout(), &analyseOptions, rep, logger); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	if err := outcome(targets, a.gate != nil); err != nil {
		logger.Error("analyse command failed", "error", err)
		return err
	}

	logger.Info("analyse command completed successfully", "sources", len(targets), "critical", rep.Summary.Critical, "warning", rep.Summary.Warning)
	return nil
}

// Initialize flags for the analyse command.
func init() {
	AnalyseCmd.Flags().StringVarP(&analyseOptions.ReportFormat, "format", "f", config.DefaultFormat, fmt.Sprintf("Format of the report: %s.", strings.Join(config.SupportedFormats, ", ")))
	AnalyseCmd.Flags().BoolP("help", "h", false, "Show help for the analyse command.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.InputFile, "input-file", "i", "", "Path to a file listing sources to analyse, one per line. Lines starting with # are ignored.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the report will be saved. Defaults to stdout.")
	AnalyseCmd.Flags().StringVar(&analyseOptions.Gate, "gate", "", "CEL expression every analysed animation must satisfy.")
	AnalyseCmd.Flags().IntVarP(&analyseOptions.Threads, "threads", "j", config.DefaultThreads, "Number of concurrent threads to use.")
	AnalyseCmd.Flags().StringVar(&analyseOptions.TemplatesPath, "templates-path", "", "Path to a folder with a report.html template for the html format.")
	AnalyseCmd.Flags().StringVar(&analyseOptions.Title, "title", report.DefaultTitle, "Title of the html report.")
	AnalyseCmd.Flags().BoolVar(&analyseOptions.NoColor, "no-color", false, "Disable colored text output.")
}

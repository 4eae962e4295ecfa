package analyse

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/lottiescan/cmd/version"
	"github.com/scan-io-git/lottiescan/internal/compat"
	"github.com/scan-io-git/lottiescan/internal/gate"
	"github.com/scan-io-git/lottiescan/internal/loader"
	"github.com/scan-io-git/lottiescan/internal/report"
	"github.com/scan-io-git/lottiescan/pkg/shared"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
	"github.com/scan-io-git/lottiescan/pkg/shared/files"
	"github.com/scan-io-git/lottiescan/pkg/shared/httpclient"
)

// DefaultReportName is the report file name used when --output names a folder.
const DefaultReportName = "lottiescan-report"

// applyConfigDefaults fills options the user did not set on the command line from the
// analyse section of the configuration.
func applyConfigDefaults(cmd *cobra.Command, options *RunOptionsAnalyse, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !cmd.Flags().Changed("format") {
		options.ReportFormat = config.SetThen(cfg.Analyse.Format, options.ReportFormat)
	}
	if !cmd.Flags().Changed("threads") {
		options.Threads = config.SetThen(cfg.Analyse.Threads, options.Threads)
	}
	if !cmd.Flags().Changed("gate") {
		options.Gate = config.SetThen(cfg.Analyse.Gate, options.Gate)
	}
}

// prepareSources expands arguments or the input file into the list of sources to analyse.
// Folders are replaced by the documents they contain; duplicates are dropped.
func prepareSources(options *RunOptionsAnalyse, args []string) ([]string, error) {
	raw := args
	if options.InputFile != "" {
		listed, err := readSourcesFile(options.InputFile)
		if err != nil {
			return nil, fmt.Errorf("error parsing the input file %s: %w", options.InputFile, err)
		}
		raw = listed
	}

	seen := make(map[string]struct{}, len(raw))
	var sources []string
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		sources = append(sources, s)
	}

	for _, src := range raw {
		if isRemote(src) {
			add(src)
			continue
		}
		found, err := files.DiscoverDocuments(src)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no animation documents found")
	}
	return sources, nil
}

// readSourcesFile reads one source per line, skipping blank lines and # comments.
func readSourcesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

func hasS3Source(sources []string) bool {
	for _, s := range sources {
		if strings.HasPrefix(strings.ToLower(s), "s3://") {
			return true
		}
	}
	return false
}

// analyser loads and analyses sources concurrently.
type analyser struct {
	loader  *loader.Loader
	gate    *gate.Gate
	threads int
	logger  hclog.Logger
}

func newAnalyser(ctx context.Context, cfg *config.Config, options *RunOptionsAnalyse, sources []string, logger hclog.Logger) (*analyser, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	opts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithHTTPClient(httpclient.InitializeRestyClient(logger, cfg)),
		loader.WithMaxDocumentSize(cfg.Analyse.MaxDocumentSize),
	}
	if hasS3Source(sources) {
		getter, err := loader.NewS3ObjectGetter(contextOrBackground(ctx), cfg.S3)
		if err != nil {
			return nil, err
		}
		opts = append(opts, loader.WithObjectGetter(getter))
	}

	a := &analyser{
		loader:  loader.New(opts...),
		threads: options.Threads,
		logger:  logger,
	}
	if options.Gate != "" {
		g, err := gate.Compile(options.Gate)
		if err != nil {
			return nil, err
		}
		a.gate = g
	}
	return a, nil
}

// run analyses every source and returns one target per source, in input order.
func (a *analyser) run(ctx context.Context, sources []string) []report.Target {
	ctx = contextOrBackground(ctx)
	targets := make([]report.Target, len(sources))
	shared.ForEveryWithBoundedGoroutines(ctx, a.threads, sources, func(i int, source string) {
		targets[i] = a.analyse(ctx, source)
	})

	for i := range targets {
		if targets[i].Source == "" {
			targets[i] = report.FailedTarget(sources[i], fmt.Errorf("not analysed: %w", ctx.Err()))
		}
	}
	return targets
}

func (a *analyser) analyse(ctx context.Context, source string) report.Target {
	anim, err := a.loader.Load(ctx, source)
	if err != nil {
		a.logger.Error("failed to load animation", "source", source, "error", err)
		return report.FailedTarget(source, err)
	}

	issues := compat.DetectIssues(anim.Document)
	t := report.NewTarget(source, issues)
	t.Name = anim.Name
	t.FormatVersion = anim.Version
	t.Container = anim.Container

	if a.gate != nil {
		passed, err := a.gate.Evaluate(issues)
		if err != nil {
			a.logger.Error("failed to evaluate gate", "source", source, "error", err)
			return report.FailedTarget(source, err)
		}
		t.GatePassed = &passed
	}

	a.logger.Debug("analysed animation", "source", source, "critical", t.Summary.Critical, "warning", t.Summary.Warning)
	return t
}

// writeReport renders the report to stdout, or to a file when an output path is set.
func writeReport(stdout io.Writer, options *RunOptionsAnalyse, rep *report.Report, logger hclog.Logger) error {
	format, err := report.ParseFormat(options.ReportFormat)
	if err != nil {
		return err
	}
	opts := report.Options{
		TemplatesPath: options.TemplatesPath,
		Title:         options.Title,
	}

	if options.OutputPath == "" {
		opts.Color = !options.NoColor && os.Getenv("NO_COLOR") == ""
		return report.Write(stdout, format, rep, opts)
	}

	path, _, err := files.DetermineFileFullPath(options.OutputPath, DefaultReportName+format.Extension())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, format, rep, opts); err != nil {
		return err
	}
	if err := files.WriteFile(path, buf.Bytes()); err != nil {
		return err
	}
	logger.Info("report saved", "path", path, "format", format)
	return nil
}

// outcome turns per-source results into the command error. Sources that could not be
// analysed take precedence over gate failures.
func outcome(targets []report.Target, gated bool) error {
	failed, rejected := 0, 0
	for _, t := range targets {
		switch {
		case t.Failed():
			failed++
		case gated && t.GatePassed != nil && !*t.GatePassed:
			rejected++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources could not be analysed", failed, len(targets))
	}
	if rejected > 0 {
		return fmt.Errorf("%w: %d of %d animations", gate.ErrFailed, rejected, len(targets))
	}
	return nil
}

func coreVersion() string {
	return version.CoreVersion
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package analyse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/lottiescan/internal/gate"
	"github.com/scan-io-git/lottiescan/internal/report"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
)

const (
	cleanAnimation  = `{"v":"5.7.0","nm":"clean","layers":[{"ind":1,"ty":4,"shapes":[{"ty":"fl"}]}]}`
	matteAnimation  = `{"v":"5.7.0","nm":"matte","layers":[{"ind":1,"td":1},{"ind":2,"tt":1,"bm":2}]}`
	brokenAnimation = `{"nm":"no markers"}`
)

func writeAnimation(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateAnalyseArgs(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := writeAnimation(t, tmpDir, "sources.txt", "anim.json\n")

	tests := []struct {
		name    string
		options RunOptionsAnalyse
		args    []string
		wantErr string
	}{
		{
			// valid: lottiescan analyse /path/to/animations
			name:    "Valid target path",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 1},
			args:    []string{tmpDir},
		},
		{
			// valid: lottiescan analyse --input-file /path/to/sources.txt
			name:    "Valid input file",
			options: RunOptionsAnalyse{ReportFormat: "json", Threads: 2, InputFile: inputFile},
		},
		{
			// valid: lottiescan analyse https://cdn.example.com/a.json s3://bucket/b.json
			name:    "Valid remote sources",
			options: RunOptionsAnalyse{ReportFormat: "sarif", Threads: 1},
			args:    []string{"https://cdn.example.com/a.json", "s3://bucket/b.json"},
		},
		{
			// fail: lottiescan analyse
			name:    "Missing both input file and source",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 1},
			wantErr: "either 'input-file' flag or a source must be specified",
		},
		{
			// fail: lottiescan analyse --input-file /path/to/sources.txt /path/to/animations
			name:    "Both input file and source provided",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 1, InputFile: inputFile},
			args:    []string{tmpDir},
			wantErr: "you cannot use an 'input-file' flag and a source at the same time",
		},
		{
			// fail: lottiescan analyse --input-file /missing.txt
			name:    "Missing input file",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 1, InputFile: filepath.Join(tmpDir, "missing.txt")},
			wantErr: "the input file is not accessible",
		},
		{
			// fail: lottiescan analyse /invalid/path
			name:    "Invalid target path",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 1},
			args:    []string{filepath.Join(tmpDir, "invalid")},
			wantErr: "the source path does not exist",
		},
		{
			// fail: lottiescan analyse -f xml /path/to/animations
			name:    "Unsupported format",
			options: RunOptionsAnalyse{ReportFormat: "xml", Threads: 1},
			args:    []string{tmpDir},
			wantErr: "unsupported format",
		},
		{
			// fail: lottiescan analyse -j 0 /path/to/animations
			name:    "Invalid threads",
			options: RunOptionsAnalyse{ReportFormat: "text", Threads: 0},
			args:    []string{tmpDir},
			wantErr: "the 'threads' flag must be a positive integer",
		},
		{
			// fail: lottiescan analyse --templates-path /tpl -f json /path/to/animations
			name:    "Templates path without html",
			options: RunOptionsAnalyse{ReportFormat: "json", Threads: 1, TemplatesPath: tmpDir},
			args:    []string{tmpDir},
			wantErr: "only supported with the html format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnalyseArgs(&tt.options, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPrepareSources(t *testing.T) {
	dir := t.TempDir()
	a := writeAnimation(t, dir, "a.json", cleanAnimation)
	b := writeAnimation(t, dir, "nested/b.lottie", "")
	writeAnimation(t, dir, "notes.txt", "")

	sources, err := prepareSources(&RunOptionsAnalyse{}, []string{dir, a, "https://cdn.example.com/x.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, "https://cdn.example.com/x.json"}, sources)

	list := writeAnimation(t, dir, "list.txt", "# animations\n\n"+a+"\n  https://cdn.example.com/x.json  \n")
	sources, err = prepareSources(&RunOptionsAnalyse{InputFile: list}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, "https://cdn.example.com/x.json"}, sources)

	_, err = prepareSources(&RunOptionsAnalyse{}, []string{t.TempDir()})
	assert.ErrorContains(t, err, "no animation documents found")
}

func TestAnalyserRunKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	sources := []string{
		writeAnimation(t, dir, "1.json", matteAnimation),
		writeAnimation(t, dir, "2.json", brokenAnimation),
		writeAnimation(t, dir, "3.json", cleanAnimation),
	}

	a, err := newAnalyser(context.Background(), config.Default(), &RunOptionsAnalyse{Threads: 3, Gate: "critical == 0"}, sources, hclog.NewNullLogger())
	require.NoError(t, err)

	targets := a.run(context.Background(), sources)
	require.Len(t, targets, 3)
	for i, target := range targets {
		assert.Equal(t, sources[i], target.Source)
	}

	assert.Equal(t, "matte", targets[0].Name)
	assert.Equal(t, 1, targets[0].Summary.Critical)
	require.NotNil(t, targets[0].GatePassed)
	assert.False(t, *targets[0].GatePassed)

	assert.True(t, targets[1].Failed())
	assert.Contains(t, targets[1].Error, "not a valid Lottie file")

	require.NotNil(t, targets[2].GatePassed)
	assert.True(t, *targets[2].GatePassed)
	assert.Empty(t, targets[2].Issues)
}

func TestAnalyserRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := newAnalyser(ctx, config.Default(), &RunOptionsAnalyse{Threads: 1}, nil, hclog.NewNullLogger())
	require.NoError(t, err)

	targets := a.run(ctx, []string{"a.json", "b.json"})
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.True(t, target.Failed())
		assert.Contains(t, target.Error, "context canceled")
	}
}

func TestNewAnalyserInvalidGate(t *testing.T) {
	_, err := newAnalyser(context.Background(), nil, &RunOptionsAnalyse{Threads: 1, Gate: "critical +"}, nil, hclog.NewNullLogger())
	assert.ErrorContains(t, err, "invalid gate expression")
}

func TestOutcome(t *testing.T) {
	passed, failed := true, false
	ok := report.Target{Source: "a", GatePassed: &passed}
	rejected := report.Target{Source: "b", GatePassed: &failed}
	broken := report.FailedTarget("c", errors.New("boom"))

	assert.NoError(t, outcome([]report.Target{ok}, true))
	assert.NoError(t, outcome([]report.Target{rejected}, false))
	assert.ErrorIs(t, outcome([]report.Target{ok, rejected}, true), gate.ErrFailed)

	err := outcome([]report.Target{rejected, broken}, true)
	assert.ErrorContains(t, err, "1 of 2 sources could not be analysed")
	assert.NotErrorIs(t, err, gate.ErrFailed)
}

func TestWriteReportToFolder(t *testing.T) {
	out := t.TempDir()
	rep := report.New("test", []report.Target{report.NewTarget("a.json", nil)})

	options := &RunOptionsAnalyse{ReportFormat: "json", OutputPath: out}
	require.NoError(t, writeReport(&bytes.Buffer{}, options, rep, hclog.NewNullLogger()))

	data, err := os.ReadFile(filepath.Join(out, DefaultReportName+".json"))
	require.NoError(t, err)
	var decoded report.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rep.RunID, decoded.RunID)
}

func TestRunAnalyseCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeAnimation(t, dir, "matte.json", matteAnimation)

	prevOptions, prevConfig := analyseOptions, AppConfig
	t.Cleanup(func() {
		analyseOptions, AppConfig = prevOptions, prevConfig
		AnalyseCmd.SetOut(nil)
	})

	AppConfig = config.Default()
	AppConfig.Analyse.Format = "json"
	analyseOptions = RunOptionsAnalyse{ReportFormat: "text", Threads: 1, Gate: "warning < 5"}
	var stdout bytes.Buffer
	AnalyseCmd.SetOut(&stdout)

	require.NoError(t, runAnalyseCommand(AnalyseCmd, []string{path}))

	var decoded report.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	require.Len(t, decoded.Targets, 1)
	assert.Equal(t, 1, decoded.Summary.Critical)
	assert.Equal(t, 1, decoded.Summary.Warning)

	analyseOptions.Gate = "critical == 0"
	stdout.Reset()
	err := runAnalyseCommand(AnalyseCmd, []string{path})
	assert.ErrorIs(t, err, gate.ErrFailed)
}

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/lottiescan/internal/compat"
	"github.com/scan-io-git/lottiescan/internal/lottie"
)

func sampleIssues(t *testing.T) []compat.Issue {
	t.Helper()
	doc := &lottie.Document{}
	for i := 1; i <= 5; i++ {
		doc.Layers = append(doc.Layers, lottie.Layer{Index: i, HasIndex: true, BlendMode: 3})
	}
	doc.Layers = append(doc.Layers, lottie.Layer{Index: 6, HasIndex: true, MatteMode: 1})
	issues := compat.DetectIssues(doc)
	require.Len(t, issues, 2)
	return issues
}

func sampleReport(t *testing.T) *Report {
	t.Helper()
	withIssues := NewTarget("anims/hero.json", sampleIssues(t))
	withIssues.FormatVersion = "5.7.4"
	return New("1.2.0", []Target{
		withIssues,
		NewTarget("anims/clean.json", nil),
		FailedTarget("anims/broken.json", errors.New("not a valid Lottie file")),
	})
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " sarif ", "html"} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, ".sarif", FormatSARIF.Extension())
	assert.Equal(t, ".txt", FormatText.Extension())
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)

	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)
	assert.Equal(t, ToolName, r.Tool)
	assert.Equal(t, compat.Summary{Critical: 1, Warning: 1, Total: 2, Occurrences: 6}, r.Summary)
	assert.True(t, r.Targets[2].Failed())
	assert.NotNil(t, r.Targets[1].Issues)
	assert.Equal(t, compat.FeatureTrackMatte, r.Targets[0].Critical()[0].ID)
	assert.Equal(t, compat.FeatureNonNormalBlend, r.Targets[0].Warnings()[0].ID)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReport(t), Options{}))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "anims/hero.json (Lottie 5.7.4)")
	assert.Contains(t, out, "1 Critical · 1 Warning")
	assert.Contains(t, out, "Critical Issues")
	assert.Contains(t, out, "Warnings")
	assert.Contains(t, out, "5×")
	assert.Contains(t, out, "[Web — Canvas]")
	assert.Contains(t, out, "…and 2 more")
	assert.Contains(t, out, "Fix: ")
	assert.Contains(t, out, "✓ No compatibility issues detected")
	assert.Contains(t, out, "error: not a valid Lottie file")
	assert.Contains(t, out, "3 files analysed: 1 critical, 1 warning")

	assert.Less(t, strings.Index(out, "Critical Issues"), strings.Index(out, "\n  Warnings"))
	assert.NotContains(t, out, "1×")
}

func TestWriteJSONKeepsIssueOrder(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, r, Options{}))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	require.Len(t, decoded.Targets, 3)
	require.Len(t, decoded.Targets[0].Issues, 2)
	assert.Equal(t, compat.FeatureTrackMatte, decoded.Targets[0].Issues[0].ID)
	assert.Equal(t, compat.FeatureNonNormalBlend, decoded.Targets[0].Issues[1].ID)
	assert.Equal(t, 5, decoded.Targets[0].Issues[1].Count)
	assert.Equal(t, "not a valid Lottie file", decoded.Targets[2].Error)
}

func TestWriteSARIF(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatSARIF, r, Options{}))

	log, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]

	assert.Equal(t, ToolName, run.Tool.Driver.Name)
	require.NotNil(t, run.AutomationDetails)
	assert.Equal(t, r.RunID, *run.AutomationDetails.GUID)
	assert.Len(t, run.Tool.Driver.Rules, 2)

	require.Len(t, run.Results, 2)
	first := run.Results[0]
	assert.Equal(t, string(compat.FeatureTrackMatte), *first.RuleID)
	assert.Equal(t, "error", *first.Level)

	second := run.Results[1]
	assert.Equal(t, "warning", *second.Level)
	require.NotNil(t, second.OccurrenceCount)
	assert.Equal(t, uint(5), *second.OccurrenceCount)
	require.Len(t, second.Locations, 1)
	assert.Len(t, second.Locations[0].LogicalLocations, compat.MaxSampledLocations)
	assert.Equal(t, "anims/hero.json", *second.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Contains(t, *second.Message.Text, "2 more locations")
}

func TestWriteHTML(t *testing.T) {
	r := sampleReport(t)
	r.Targets[0].Issues[1].Locations[0] = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatHTML, r, Options{Title: "Release check"}))
	out := buf.String()

	assert.Contains(t, out, "<title>Release check</title>")
	assert.Contains(t, out, "Critical Issues")
	assert.Contains(t, out, "…and 2 more")
	assert.Contains(t, out, "5×")
	assert.Contains(t, out, "✓ No compatibility issues detected")
	assert.Contains(t, out, "not a valid Lottie file")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, r.RunID)
}

func TestWriteUnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("xml"), sampleReport(t), Options{}))
	assert.Error(t, Write(&bytes.Buffer{}, FormatJSON, nil, Options{}))
}

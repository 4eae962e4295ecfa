package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

const (
	// ToolName is the driver name used in reports.
	ToolName = "lottiescan"
	// InformationURI points at the project home.
	InformationURI = "https://github.com/scan-io-git/lottiescan"
)

// Format is a report output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
	FormatHTML  Format = "html"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// Extension returns the file extension conventionally used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatSARIF:
		return ".sarif"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Target is the analysis outcome for one input source.
type Target struct {
	Source        string         `json:"source"`
	Name          string         `json:"name,omitempty"`
	FormatVersion string         `json:"formatVersion,omitempty"`
	Container     bool           `json:"container,omitempty"`
	Issues        []compat.Issue `json:"issues"`
	Summary       compat.Summary `json:"summary"`
	GatePassed    *bool          `json:"gatePassed,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// NewTarget builds a target from an issue list, which is kept in the given order.
func NewTarget(source string, issues []compat.Issue) Target {
	if issues == nil {
		issues = []compat.Issue{}
	}
	return Target{
		Source:  source,
		Issues:  issues,
		Summary: compat.Summarize(issues),
	}
}

// FailedTarget records a source that could not be analysed.
func FailedTarget(source string, err error) Target {
	return Target{Source: source, Issues: []compat.Issue{}, Error: err.Error()}
}

// Failed reports whether the source could not be analysed.
func (t Target) Failed() bool {
	return t.Error != ""
}

// Critical returns the critical issues in stored order.
func (t Target) Critical() []compat.Issue {
	return t.bySeverity(compat.SeverityCritical)
}

// Warnings returns the warning issues in stored order.
func (t Target) Warnings() []compat.Issue {
	return t.bySeverity(compat.SeverityWarning)
}

func (t Target) bySeverity(s compat.Severity) []compat.Issue {
	var out []compat.Issue
	for _, issue := range t.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

// Report is the outcome of one analyse run.
type Report struct {
	RunID       string         `json:"runId"`
	Tool        string         `json:"tool"`
	ToolVersion string         `json:"toolVersion"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Summary     compat.Summary `json:"summary"`
	Targets     []Target       `json:"targets"`
}

// New assembles a report with a fresh run id.
func New(toolVersion string, targets []Target) *Report {
	r := &Report{
		RunID:       uuid.NewString(),
		Tool:        ToolName,
		ToolVersion: toolVersion,
		GeneratedAt: time.Now().UTC(),
		Targets:     targets,
	}
	for _, t := range targets {
		r.Summary.Critical += t.Summary.Critical
		r.Summary.Warning += t.Summary.Warning
		r.Summary.Total += t.Summary.Total
		r.Summary.Occurrences += t.Summary.Occurrences
	}
	return r
}

// Options tune the renderers.
type Options struct {
	// Color enables ANSI styling in the text format.
	Color bool
	// TemplatesPath overrides the built-in HTML template folder.
	TemplatesPath string
	// Title is used by the HTML format.
	Title string
}

// Write renders r to w in the requested format.
func Write(w io.Writer, format Format, r *Report, opts Options) error {
	if r == nil {
		return fmt.Errorf("report is nil")
	}
	switch format {
	case FormatText:
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatSARIF:
		return WriteSARIF(w, r)
	case FormatHTML:
		return WriteHTML(w, r, opts)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

// sarifLevel maps a severity onto a SARIF result level.
func sarifLevel(s compat.Severity) string {
	if s == compat.SeverityCritical {
		return "error"
	}
	return "warning"
}

// WriteSARIF writes the report as a SARIF 2.1.0 log with one run. Every rule that fired
// in any target is declared once; every issue becomes one result.
func WriteSARIF(w io.Writer, r *Report) error {
	report, err := BuildSARIF(r)
	if err != nil {
		return err
	}
	if err := report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// BuildSARIF converts the report into a go-sarif document.
func BuildSARIF(r *Report) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, InformationURI)
	if r.ToolVersion != "" {
		run.Tool.Driver.WithVersion(r.ToolVersion)
	}
	run.WithAutomationDetails(sarif.NewRunAutomationDetails().WithGUID(r.RunID))

	for _, target := range r.Targets {
		for _, issue := range target.Issues {
			addSARIFRule(run, issue.Rule)

			result := run.CreateResultForRule(string(issue.ID)).
				WithLevel(sarifLevel(issue.Severity)).
				WithMessage(sarif.NewTextMessage(sarifMessage(issue))).
				WithOccurrenceCount(issue.Count)

			logical := make([]*sarif.LogicalLocation, 0, len(issue.Locations))
			for _, loc := range issue.Locations {
				logical = append(logical, sarif.NewLogicalLocation().
					WithFullyQualifiedName(loc).
					WithKind("element"))
			}
			result.AddLocation(sarif.NewLocation().
				WithPhysicalLocation(sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(target.Source))).
				WithLogicalLocations(logical))
		}
	}

	report.AddRun(run)
	return report, nil
}

func addSARIFRule(run *sarif.Run, rule compat.Rule) {
	run.AddRule(string(rule.ID)).
		WithName(rule.Name).
		WithDescription(rule.Name).
		WithFullDescription(sarif.NewMultiformatMessageString(rule.Description)).
		WithTextHelp(rule.Remediation).
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel(sarifLevel(rule.Severity))).
		WithProperties(sarif.Properties{
			"severity":         string(rule.Severity),
			"affectedRuntimes": rule.AffectedRuntimes,
			"tags":             []string{"lottie", "compatibility"},
		})
}

func sarifMessage(issue compat.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d×). %s", issue.Name, issue.Count, issue.Description)
	if more := issue.MoreLocations(); more > 0 {
		fmt.Fprintf(&b, " %d more %s not listed.", more, pluralize(more, "location", "locations"))
	}
	return b.String()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

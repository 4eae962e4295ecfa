package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

var (
	criticalStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warningStyle  = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	cleanStyle    = pterm.NewStyle(pterm.FgGreen)
	headerStyle   = pterm.NewStyle(pterm.Bold)
	mutedStyle    = pterm.NewStyle(pterm.FgGray)
	badgeStyle    = pterm.NewStyle(pterm.FgCyan)
)

// WriteText writes a human-readable report. Issues are printed in the order they are
// stored, grouped into a critical and a warning section.
func WriteText(w io.Writer, r *Report, opts Options) error {
	var b strings.Builder
	for i, target := range r.Targets {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTextTarget(&b, target)
	}
	if len(r.Targets) > 1 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Sprintf("%d %s analysed: %d critical, %d %s",
			len(r.Targets), pluralize(len(r.Targets), "file", "files"),
			r.Summary.Critical, r.Summary.Warning, pluralize(r.Summary.Warning, "warning", "warnings")))
		b.WriteString("\n")
	}

	out := b.String()
	if !opts.Color {
		out = pterm.RemoveColorFromString(out)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}

func writeTextTarget(b *strings.Builder, t Target) {
	title := t.Source
	if t.FormatVersion != "" {
		title += mutedStyle.Sprintf(" (Lottie %s)", t.FormatVersion)
	}
	b.WriteString(headerStyle.Sprint(title))
	b.WriteString("\n")

	if t.Failed() {
		fmt.Fprintf(b, "  %s %s\n", criticalStyle.Sprint("error:"), t.Error)
		return
	}
	if len(t.Issues) == 0 {
		fmt.Fprintf(b, "  %s\n", cleanStyle.Sprint("✓ No compatibility issues detected"))
		return
	}

	var badges []string
	if t.Summary.Critical > 0 {
		badges = append(badges, criticalStyle.Sprintf("%d Critical", t.Summary.Critical))
	}
	if t.Summary.Warning > 0 {
		badges = append(badges, warningStyle.Sprintf("%d %s", t.Summary.Warning, pluralize(t.Summary.Warning, "Warning", "Warnings")))
	}
	fmt.Fprintf(b, "  ⚠ Compatibility Issues: %s\n", strings.Join(badges, " · "))

	writeTextSection(b, "Critical Issues", criticalStyle, compat.SeverityCritical, t.Issues)
	writeTextSection(b, "Warnings", warningStyle, compat.SeverityWarning, t.Issues)
}

func writeTextSection(b *strings.Builder, label string, style *pterm.Style, severity compat.Severity, issues []compat.Issue) {
	header := false
	for _, issue := range issues {
		if issue.Severity != severity {
			continue
		}
		if !header {
			fmt.Fprintf(b, "\n  %s\n", style.Sprint(label))
			header = true
		}
		writeTextIssue(b, style, issue)
	}
}

func writeTextIssue(b *strings.Builder, style *pterm.Style, issue compat.Issue) {
	icon := "!"
	if issue.Severity == compat.SeverityCritical {
		icon = "✕"
	}

	line := fmt.Sprintf("  %s %s", style.Sprint(icon), headerStyle.Sprint(issue.Name))
	if issue.Count > 1 {
		line += " " + style.Sprintf("%d×", issue.Count)
	}
	for _, runtime := range issue.AffectedRuntimes {
		line += " " + badgeStyle.Sprintf("[%s]", runtime)
	}
	b.WriteString(line)
	b.WriteString("\n")

	for _, loc := range issue.Locations {
		fmt.Fprintf(b, "      %s\n", mutedStyle.Sprint(loc))
	}
	if more := issue.MoreLocations(); more > 0 {
		fmt.Fprintf(b, "      %s\n", mutedStyle.Sprintf("…and %d more", more))
	}
	fmt.Fprintf(b, "    %s\n", issue.Description)
	fmt.Fprintf(b, "    %s %s\n", headerStyle.Sprint("Fix:"), issue.Remediation)
}

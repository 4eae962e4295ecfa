package compat

import (
	"sort"

	"github.com/scan-io-git/lottiescan/internal/lottie"
)

// Issue is a catalog rule joined with the occurrences found in a document.
type Issue struct {
	Rule
	Count     int      `json:"count"`
	Locations []string `json:"locations"`
}

// MoreLocations returns how many occurrences were counted but not sampled.
func (i Issue) MoreLocations() int {
	if n := i.Count - len(i.Locations); n > 0 {
		return n
	}
	return 0
}

// DetectIssues analyses a document against the built-in catalog.
func DetectIssues(doc *lottie.Document) []Issue {
	return BuildIssues(Walk(doc), DefaultCatalog())
}

// BuildIssues joins findings with catalog rules. Findings without a rule are dropped.
// Issues are ordered critical first, then by descending count; ties keep the order in
// which features were first encountered.
func BuildIssues(findings *Findings, catalog Catalog) []Issue {
	issues := make([]Issue, 0, findings.Len())
	for _, id := range findings.IDs() {
		rule, ok := catalog.Lookup(id)
		if !ok {
			continue
		}
		finding, _ := findings.Get(id)
		issues = append(issues, Issue{
			Rule:      rule,
			Count:     finding.Count,
			Locations: finding.Locations,
		})
	}

	sort.SliceStable(issues, func(a, b int) bool {
		ra, rb := issues[a].Severity.Rank(), issues[b].Severity.Rank()
		if ra != rb {
			return ra < rb
		}
		return issues[a].Count > issues[b].Count
	})
	return issues
}

// Summary holds per-severity totals of an issue list.
type Summary struct {
	Critical    int `json:"critical"`
	Warning     int `json:"warning"`
	Total       int `json:"total"`
	Occurrences int `json:"occurrences"`
}

// Summarize counts issues per severity.
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warning++
		}
		s.Total++
		s.Occurrences += issue.Count
	}
	return s
}

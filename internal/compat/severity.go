package compat

import "fmt"

// Severity represents how badly a feature breaks on the affected runtimes.
type Severity string

const (
	// SeverityCritical marks features that render wrong or not at all.
	SeverityCritical Severity = "critical"
	// SeverityWarning marks features with partial or inconsistent support.
	SeverityWarning Severity = "warning"
)

// IsValid returns true if the severity level is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityWarning:
		return true
	default:
		return false
	}
}

// Rank orders severities for reporting; lower ranks are reported first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity value.
func ParseSeverity(s string) (Severity, error) {
	severity := Severity(s)
	if !severity.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return severity, nil
}

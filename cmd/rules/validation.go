package rules

import (
	"fmt"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

// validateRulesArgs validates the arguments provided to the rules command.
func validateRulesArgs(options *RunOptionsRules) error {
	switch options.OutputFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q, expected one of: text, json, yaml", options.OutputFormat)
	}

	if options.Severity != "" {
		if _, err := compat.ParseSeverity(options.Severity); err != nil {
			return err
		}
	}
	return nil
}

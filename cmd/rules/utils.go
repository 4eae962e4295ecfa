package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

// filterRules keeps rules of the given severity; an empty severity keeps all.
func filterRules(rules []compat.Rule, severity string) []compat.Rule {
	if severity == "" {
		return rules
	}
	var out []compat.Rule
	for _, r := range rules {
		if string(r.Severity) == severity {
			out = append(out, r)
		}
	}
	return out
}

func printRules(w io.Writer, rules []compat.Rule, options *RunOptionsRules) error {
	if rules == nil {
		rules = []compat.Rule{}
	}

	switch options.OutputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	case "yaml":
		out, err := yaml.Marshal(rules)
		if err != nil {
			return fmt.Errorf("failed to encode rules: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return printRulesTable(w, rules, !options.NoColor && os.Getenv("NO_COLOR") == "")
	}
}

func printRulesTable(w io.Writer, rules []compat.Rule, color bool) error {
	data := pterm.TableData{{"ID", "Name", "Severity", "Affected runtimes"}}
	for _, r := range rules {
		severity := string(r.Severity)
		if r.Severity == compat.SeverityCritical {
			severity = pterm.FgRed.Sprint(severity)
		} else {
			severity = pterm.FgYellow.Sprint(severity)
		}
		data = append(data, []string{string(r.ID), r.Name, severity, strings.Join(r.AffectedRuntimes, ", ")})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render rules table: %w", err)
	}
	if !color {
		table = pterm.RemoveColorFromString(table)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// Package gate evaluates CEL quality gates over analysis results.
package gate

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/scan-io-git/lottiescan/internal/compat"
)

// ErrFailed is returned when at least one analysed document fails the gate.
var ErrFailed = errors.New("quality gate failed")

// Gate is a compiled gate expression.
type Gate struct {
	expr string
	prg  cel.Program
}

// Environment declares the variables available to gate expressions:
//
//	critical, warning, total, occurrences  int
//	features                               list(string)
//	issues                                 list(map(string, dyn)) with id, severity, count
func Environment() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("critical", cel.IntType),
		cel.Variable("warning", cel.IntType),
		cel.Variable("total", cel.IntType),
		cel.Variable("occurrences", cel.IntType),
		cel.Variable("features", cel.ListType(cel.StringType)),
		cel.Variable("issues", cel.ListType(cel.MapType(cel.StringType, cel.DynType))),
	)
}

// Compile parses and type-checks expr. The expression must evaluate to a bool.
func Compile(expr string) (*Gate, error) {
	env, err := Environment()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid gate expression %q: %w", expr, issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("gate expression %q must evaluate to bool, got %s", expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program construction error: %w", err)
	}
	return &Gate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (g *Gate) String() string {
	return g.expr
}

// Evaluate runs the gate over an issue list. It returns true when the gate passes.
func (g *Gate) Evaluate(issues []compat.Issue) (bool, error) {
	out, _, err := g.prg.Eval(Activation(issues))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate gate %q: %w", g.expr, err)
	}
	passed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("gate %q returned %v, expected bool", g.expr, out.Value())
	}
	return passed, nil
}

// Activation builds the variable bindings for an issue list.
func Activation(issues []compat.Issue) map[string]any {
	summary := compat.Summarize(issues)
	features := make([]string, 0, len(issues))
	list := make([]any, 0, len(issues))
	for _, issue := range issues {
		features = append(features, string(issue.ID))
		list = append(list, map[string]any{
			"id":       string(issue.ID),
			"severity": string(issue.Severity),
			"count":    int64(issue.Count),
		})
	}
	return map[string]any{
		"critical":    int64(summary.Critical),
		"warning":     int64(summary.Warning),
		"total":       int64(summary.Total),
		"occurrences": int64(summary.Occurrences),
		"features":    features,
		"issues":      list,
	}
}

package report

import (
	"fmt"
	"io"

	"github.com/scan-io-git/lottiescan/internal/template"
)

// DefaultTitle is the HTML report title when none is given.
const DefaultTitle = "Lottie Compatibility Report"

// WriteHTML renders the report with the built-in template or the one found in
// opts.TemplatesPath.
func WriteHTML(w io.Writer, r *Report, opts Options) error {
	tmpl, err := template.NewTemplate(opts.TemplatesPath)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	data := struct {
		Title  string
		Report *Report
	}{
		Title:  title,
		Report: r,
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

package template

import (
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTemplateName is the file name looked up in a templates folder.
const DefaultTemplateName = "report.html"

//go:embed templates/report.html
var defaultTemplates embed.FS

// add adds two integers and returns the result.
// helper function for html template
func add(a, b int) int {
	return a + b
}

// ordinalDate returns a string with the ordinal number of the day
// helper function for html template
func ordinalDate(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// formatDateTime formats a time.Time object into the specified string format.
// helper function for html template
func formatDateTime(t time.Time) string {
	day := ordinalDate(t.Day())
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %s %d %d:%02d:%02d %s", day, t.Month(), t.Year(), hour, t.Minute(), t.Second(), t.Format("pm"))
}

// plural returns word with an "s" appended unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"add":            add,
		"formatDateTime": formatDateTime,
		"join":           strings.Join,
		"plural":         plural,
		"upper":          strings.ToUpper,
	}
}

// NewTemplate parses the report template from templatesPath, or the built-in one when
// templatesPath is empty.
func NewTemplate(templatesPath string) (*template.Template, error) {
	tmpl := template.New(DefaultTemplateName).Funcs(funcs())
	if templatesPath == "" {
		return tmpl.ParseFS(defaultTemplates, "templates/"+DefaultTemplateName)
	}
	return tmpl.ParseFiles(filepath.Join(templatesPath, DefaultTemplateName))
}

// Package renderer turns cost basis reports into plain text or markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templatesFS embed.FS

// templates is rooted at the templates directory.
var templates, _ = fs.Sub(templatesFS, "templates")

// Markdown renders the report to a markdown string.
func Markdown(r *Report) string {
	partials := map[string]string{
		"report_title":   "report_title.md",
		"report_summary": "report_summary.md",
		"report_symbols": "report_symbols.md",
	}
	// An empty file name results in an empty template.
	if r.Summary == nil {
		partials["report_summary"] = ""
	}
	if !r.PerSymbol {
		partials["report_symbols"] = ""
	}
	return renderTemplate("report", "report.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

package console

import (
	"embed"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// parseTemplates loads every embedded template with funcs available.
func parseTemplates(funcs template.FuncMap) *template.Template {
	// The templates ship with the binary; a parse failure is a build defect.
	return template.Must(template.New("console").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

// Package web holds the HTML templates of the console.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses every page template. Pages are looked up by file
// name, e.g. "chat.tmpl".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}

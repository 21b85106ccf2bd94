// Package web holds the pages rendered by the identity provider and relying
// parties.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.gotmpl
var files embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.gotmpl")
}

// Package web holds the server-rendered upload and listing pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
}

// Templates parses the embedded pages. Names are the file base names.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

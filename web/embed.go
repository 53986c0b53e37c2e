// Package web holds the HTML templates rendered by the site handlers.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/manosay/manosay/backend/go-services/internal/posts"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"isodate": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
		"body":    posts.RenderBody,
		"join":    strings.Join,
		"year":    func() int { return time.Now().Year() },
	}
}

// Templates parses every page. Templates are addressed by file name,
// e.g. "blog.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// MustTemplates is Templates for process start and tests.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

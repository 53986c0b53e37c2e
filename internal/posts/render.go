package posts

import (
	"bytes"
	"html"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/manosay/manosay/backend/go-services/internal/models"
)

var (
	// bodyPolicy allows the usual article markup and strips scripts and handlers.
	bodyPolicy = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()

	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
)

// RenderBody returns the sanitized HTML body of a post. Markdown posts are
// converted first; raw HTML inside markdown is kept and then sanitized.
func RenderBody(p *models.Post) template.HTML {
	if p == nil {
		return ""
	}
	src := p.Content
	if p.Format == models.PostFormatMarkdown {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(p.Content), &buf); err == nil {
			src = buf.String()
		}
	}
	return template.HTML(bodyPolicy.Sanitize(src))
}

// PlainText strips every tag from s and unescapes entities.
func PlainText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}

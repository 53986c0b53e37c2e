package posts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manosay/manosay/backend/go-services/internal/models"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":              "hello-world",
		"  Go   is  fun!  ":        "go-is-fun",
		"Ünïcödé Tïtlé":            "unicode-title",
		"already-a-slug":           "already-a-slug",
		"multiple---hyphens":       "multiple-hyphens",
		"Tabs\tand\nnewlines":      "tabs-and-newlines",
		"100% Growth in 2025?":     "100-growth-in-2025",
		"--leading and trailing--": "leading-and-trailing",
		"!!!":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugify_MaxLength(t *testing.T) {
	s := Slugify(strings.Repeat("word ", 60))
	assert.LessOrEqual(t, len(s), MaxSlugLength)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestRenderBody_SanitizesHTML(t *testing.T) {
	p := &models.Post{Format: models.PostFormatHTML, Content: `<p onclick="x()">Hi <b>there</b></p><script>alert(1)</script>`}
	out := string(RenderBody(p))
	assert.Contains(t, out, "<b>there</b>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "onclick")
}

func TestRenderBody_Markdown(t *testing.T) {
	p := &models.Post{Format: models.PostFormatMarkdown, Content: "# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>"}
	out := string(RenderBody(p))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderBody_Nil(t *testing.T) {
	assert.Equal(t, "", string(RenderBody(nil)))
}

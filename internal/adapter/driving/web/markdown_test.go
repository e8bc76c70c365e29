package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_Basic(t *testing.T) {
	out := RenderMarkdown("# Heading\n\nSome **bold** text.")

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	out := RenderMarkdown("hello <script>alert('xss')</script> world")

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestRenderMarkdown_SanitizesEventHandlers(t *testing.T) {
	out := RenderMarkdown(`<img src="x" onerror="alert(1)">`)

	assert.NotContains(t, out, "onerror")
}

func TestRenderMarkdown_GFMStrikethrough(t *testing.T) {
	out := RenderMarkdown("~~obsolete~~")

	assert.Contains(t, out, "<del>obsolete</del>")
}

func TestRenderMarkdown_GFMTaskList(t *testing.T) {
	out := RenderMarkdown("- [x] done item\n- [ ] open item")

	assert.Contains(t, out, "done item")
	assert.Contains(t, out, "open item")
}

func TestRenderMarkdown_Links(t *testing.T) {
	out := RenderMarkdown("[docs](https://example.com/docs)")

	assert.Contains(t, out, `href="https://example.com/docs"`)
}

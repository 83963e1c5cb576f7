package checklist

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	htmlRenderer = goldmark.New(
		goldmark.WithExtensions(extension.TaskList),
	)
	htmlSanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Task list rendering emits disabled checkboxes.
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// HTML renders the checklist's markdown export as sanitized HTML for
// dashboards and audit views. Like Markdown, it is display-only.
func (c *Checklist) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(c.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("failed to render checklist: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

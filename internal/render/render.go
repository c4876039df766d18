// Package render converts confession bodies into safe display HTML.
// Confessions are plain text with a little markdown allowed (emphasis,
// code spans, strikethrough); everything else is stripped.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/confessd-dev/confessd/shared/logger"
)

type TextProcessor struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
	)
	return &TextProcessor{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render produces sanitized HTML for one confession body. On a markdown
// failure the raw text is sanitized and returned as-is; rendering problems
// must never take a post out of the feed.
func (tp *TextProcessor) Render(text string) string {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Warn("markdown render failed, falling back to plain text", "error", err)
		return tp.sanitizer.Sanitize(text)
	}
	return tp.sanitizer.Sanitize(buf.String())
}

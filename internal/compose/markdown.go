package compose

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders assistant message markdown (bold, lists, link markup) for the
// widget. Autolinking keeps bare catalog URLs clickable.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
)

// RenderHTML converts message markdown to HTML. On a render error the raw
// text is returned; the widget then shows plain text instead of nothing.
func RenderHTML(text string) string {
	var sb strings.Builder
	if err := md.Convert([]byte(text), &sb); err != nil {
		return text
	}
	return sb.String()
}

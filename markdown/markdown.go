// Package markdown renders post bodies from Markdown to HTML as templ components.
package markdown

import (
	"bytes"
	"context"
	"io"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderMarkdown(w, content)
	})
}

// RenderMarkdown writes the HTML representation of content to w. Raw HTML
// in the source is omitted.
func RenderMarkdown(w io.Writer, content string) error {
	return md.Convert([]byte(content), w)
}

// ToHTML converts content to an HTML string.
func ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReadingMinutes estimates reading time at 200 words (or 400 CJK runes) per
// minute, never less than one.
func ReadingMinutes(content string) int {
	words, cjk := 0, 0
	inWord := false
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		i += size
		switch {
		case r >= 0x2E80 && r <= 0x9FFF:
			cjk++
			inWord = false
		case r == ' ' || r == '\n' || r == '\t' || r == '\r':
			inWord = false
		default:
			if !inWord {
				words++
				inWord = true
			}
		}
	}
	minutes := words/200 + cjk/400
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Package markdown turns Markdown input into a standalone HTML page that
// the renderer can read from stdin.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownStyle   = errors.New("unknown highlight style")
)

// DefaultTitle and DefaultStyle apply when no option overrides them.
const (
	DefaultTitle = "Document"
	DefaultStyle = "github"
)

// pageTemplate wraps goldmark's fragment output in a complete HTML5 page.
// The charset declaration matters: without it the renderer guesses Latin-1.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Converter converts Markdown to HTML with goldmark.
type Converter struct {
	md    goldmark.Markdown
	title string
}

type settings struct {
	title string
	style string
}

// Option configures a Converter.
type Option func(*settings)

// WithTitle sets the page title. Empty keeps DefaultTitle.
func WithTitle(title string) Option {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
	}
}

// WithHighlightStyle selects the chroma style for fenced code blocks.
// Empty keeps DefaultStyle.
func WithHighlightStyle(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.style = name
		}
	}
}

// New creates a Converter with GFM extensions and syntax highlighting.
// Highlighting uses inline styles since the page carries no stylesheet.
func New(opts ...Option) (*Converter, error) {
	s := settings{title: DefaultTitle, style: DefaultStyle}
	for _, opt := range opts {
		opt(&s)
	}
	if _, ok := styles.Registry[s.style]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, s.style)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(s.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // anchors for the renderer's outline and toc
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &Converter{md: md, title: s.title}, nil
}

// ToHTML converts Markdown content to a standalone HTML5 page.
// Goldmark has no context support, so conversion runs in a goroutine and
// the caller stops waiting on cancellation.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(pageTemplate, html.EscapeString(c.title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustNew(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestConverter_ToHTML - Markdown rendering
// ---------------------------------------------------------------------------

func TestConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "standalone page",
			input:        "# Hello World",
			wantContains: []string{"<!DOCTYPE html>", `<meta charset="utf-8">`, "<title>Document</title>", "<h1", "Hello World"},
		},
		{
			name:         "heading IDs",
			input:        "# First\n## Second",
			wantContains: []string{`id="first"`, `id="second"`},
		},
		{
			name:         "GFM table",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>", "<td>"},
		},
		{
			name:         "GFM strikethrough",
			input:        "~~deleted~~",
			wantContains: []string{"<del>deleted</del>"},
		},
		{
			name:         "footnote",
			input:        "Text[^1]\n\n[^1]: Note",
			wantContains: []string{"footnote"},
		},
		{
			name:         "highlighted code uses inline styles",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{"<pre", `style="`, "main"},
			wantNot:      []string{`class="chroma"`},
		},
		{
			name:         "raw HTML is not passed through",
			input:        "<script>alert(1)</script>",
			wantNot:      []string{"<script>"},
		},
	}

	c := mustNew(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output contains %q\n%s", not, got)
				}
			}
		})
	}
}

func TestConverter_ToHTML_TitleIsEscaped(t *testing.T) {
	t.Parallel()

	c := mustNew(t, WithTitle(`Q&A <draft>`))
	got, err := c.ToHTML(context.Background(), "text")
	if err != nil {
		t.Fatalf("ToHTML() error: %v", err)
	}
	if !strings.Contains(got, "<title>Q&amp;A &lt;draft&gt;</title>") {
		t.Errorf("title not escaped:\n%s", got)
	}
}

func TestConverter_ToHTML_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mustNew(t).ToHTML(ctx, "# Hi")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestNew - Option handling
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"known style", []Option{WithHighlightStyle("monokai")}, nil},
		{"empty style keeps default", []Option{WithHighlightStyle("")}, nil},
		{"unknown style", []Option{WithHighlightStyle("no-such-style")}, ErrUnknownStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTitle_EmptyKeepsDefault(t *testing.T) {
	t.Parallel()

	if c := mustNew(t, WithTitle("")); c.title != DefaultTitle {
		t.Errorf("title = %q, want %q", c.title, DefaultTitle)
	}
}

package wkhtmltopdf

import (
	"regexp"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIgnoreRules
// ---------------------------------------------------------------------------

func TestIgnoreString(t *testing.T) {
	t.Parallel()

	r := IgnoreString("Warning: test")
	if !r.Match("Warning: test") {
		t.Error("exact message did not match")
	}
	if r.Match("Warning: test!") || r.Match("warning: test") {
		t.Error("IgnoreString must match exactly")
	}
}

func TestIgnorePattern(t *testing.T) {
	t.Parallel()

	r := IgnorePattern(regexp.MustCompile(`^Warning:`))
	if !r.Match("Warning: Failed to load font") {
		t.Error("pattern did not match")
	}
	if r.Match("Error: Failed to load page") {
		t.Error("pattern matched unrelated message")
	}
}

func TestIgnorePattern_NilRegexp(t *testing.T) {
	t.Parallel()

	if IgnorePattern(nil).Match("anything") {
		t.Error("nil pattern must never match")
	}
}

func TestIgnoreECMAScript(t *testing.T) {
	t.Parallel()

	// Lookahead is not supported by Go's regexp package.
	r, err := IgnoreECMAScript(`^Warning:(?!.*fatal)`)
	if err != nil {
		t.Fatalf("IgnoreECMAScript() error: %v", err)
	}
	if !r.Match("Warning: slow font") {
		t.Error("expected match")
	}
	if r.Match("Warning: fatal font") {
		t.Error("negative lookahead ignored")
	}
}

func TestIgnoreECMAScript_InvalidPattern(t *testing.T) {
	t.Parallel()

	if _, err := IgnoreECMAScript(`(unclosed`); err == nil {
		t.Error("IgnoreECMAScript() error = nil, want compile error")
	}
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	rules := []IgnoreRule{nil, IgnoreString("a"), IgnorePattern(regexp.MustCompile(`b+`))}

	tests := []struct {
		msg  string
		want bool
	}{
		{"a", true},
		{"xbbx", true},
		{"c", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := matchesAny(rules, tt.msg); got != tt.want {
			t.Errorf("matchesAny(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
	if matchesAny(nil, "a") {
		t.Error("matchesAny(nil) = true")
	}
}

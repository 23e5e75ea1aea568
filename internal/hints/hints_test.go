package hints

// Notes:
// - ForBinaryNotFound tests cannot use t.Parallel() because they use
//   t.Setenv() and modify the package-level IsInContainer variable.

import (
	"strings"
	"testing"
)

func TestForBinaryNotFound_CommandUnset(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("WK2PDF_COMMAND", "")

	hint := ForBinaryNotFound()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint format inconsistent: %q", hint)
	}
	if !strings.Contains(hint, "--command") {
		t.Error("expected --command suggestion")
	}
	if strings.Contains(hint, "image") {
		t.Error("unexpected container suggestion outside a container")
	}
}

func TestForBinaryNotFound_CommandSet(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("WK2PDF_COMMAND", "/opt/wk/bin/wkhtmltopdf")

	if hint := ForBinaryNotFound(); !strings.Contains(hint, "WK2PDF_COMMAND is set") {
		t.Errorf("hint = %q, want mention of the configured command", hint)
	}
}

func TestForBinaryNotFound_InContainer(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("WK2PDF_COMMAND", "")

	hint := ForBinaryNotFound()
	if !strings.Contains(hint, "image") {
		t.Errorf("hint = %q, want container install suggestion", hint)
	}
	if strings.Count(hint, "hint:") != 1 {
		t.Errorf("hints should be joined into one line: %q", hint)
	}
}

func TestForDiagnostic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message  string
		contains string
	}{
		{"QXcbConnection: Could not connect to display; cannot connect to X server", "xvfb-run"},
		{"Exit with code 1 due to network error: HostNotFoundError", "reachable"},
		{"Exit with code 1 due to network error: ContentNotFoundError", "--ignore-pattern"},
		{"Warning: Failed to load file:///x.css (ignore)", "--ignore"},
		{"Segmentation fault", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			hint := ForDiagnostic(tt.message)
			if tt.contains == "" {
				if hint != "" {
					t.Errorf("ForDiagnostic() = %q, want empty", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("ForDiagnostic() = %q, want containing %q", hint, tt.contains)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{"empty paths", nil, "--config"},
		{"with user path", []string{"./letter.yaml", "/home/u/.config/go-wkhtmltopdf/letter.yaml"}, "create /home/u/.config/go-wkhtmltopdf/letter.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, h := range []string{
		ForOutputDirectory(),
		ForConfigNotFound(nil),
		ForDiagnostic("Warning: x"),
	} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
	if format("") != "" || formatHints(nil) != "" {
		t.Error("empty hints should format to empty string")
	}
}

// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-wkhtmltopdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBinaryNotFound returns hints for a renderer that could not be started.
func ForBinaryNotFound() string {
	var hints []string

	if os.Getenv("WK2PDF_COMMAND") == "" {
		hints = append(hints, "set WK2PDF_COMMAND or --command to the wkhtmltopdf binary")
	} else {
		hints = append(hints, "WK2PDF_COMMAND is set; check the path it points to")
	}
	if IsInContainer() {
		hints = append(hints, "install the wkhtmltopdf package in the image")
	}

	return formatHints(hints)
}

// ForDiagnostic returns a hint for well-known renderer messages, or "" when
// the message is not recognized.
func ForDiagnostic(message string) string {
	switch {
	case strings.Contains(message, "cannot connect to X server"):
		return format("this build needs a display; use a patched-Qt build or run under xvfb-run")
	case strings.Contains(message, "HostNotFoundError"),
		strings.Contains(message, "ConnectionRefusedError"):
		return format("check the input URL is reachable from this machine")
	case strings.Contains(message, "ContentNotFoundError"),
		strings.Contains(message, "ProtocolUnknownError"):
		return format("a linked resource failed to load; use --ignore-pattern to tolerate it")
	case strings.HasPrefix(message, "Warning:"):
		return format("warnings are fatal unless ignored; use --ignore or --ignore-pattern")
	}
	return ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-wkhtmltopdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-wkhtmltopdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

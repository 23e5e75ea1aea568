package wkhtmltopdf

import "errors"

// Sentinel errors for library operations.
var (
	// ErrLaunch indicates the renderer could not be started
	// (binary missing, permission denied).
	ErrLaunch = errors.New("wkhtmltopdf: launch failed")

	// ErrDiagnostic indicates the renderer wrote to stderr and no ignore
	// rule matched the message.
	ErrDiagnostic = errors.New("wkhtmltopdf: diagnostic output")

	// ErrInvalidCommandLine indicates the joined shell command does not parse.
	ErrInvalidCommandLine = errors.New("wkhtmltopdf: invalid command line")

	// ErrReservedOption indicates a reserved name was set as a plain flag.
	ErrReservedOption = errors.New("wkhtmltopdf: reserved option name")

	// ErrEmptyCommand indicates an argument vector without an executable.
	ErrEmptyCommand = errors.New("wkhtmltopdf: empty command")
)

// LaunchError wraps a failure to start the renderer.
// Consumers can errors.As to *exec.Error or *fs.PathError for detail.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return "wkhtmltopdf: launch " + e.Command
	}
	return e.Err.Error()
}

func (e *LaunchError) Unwrap() []error { return []error{ErrLaunch, e.Err} }

// DiagnosticError carries the trimmed text the renderer wrote to stderr.
// Error returns the message verbatim so ignore rules and callers compare
// against exactly what the tool printed.
type DiagnosticError struct {
	Message string
}

func (e *DiagnosticError) Error() string { return e.Message }

func (e *DiagnosticError) Unwrap() error { return ErrDiagnostic }

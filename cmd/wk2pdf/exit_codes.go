package main

import (
	"context"
	"errors"
	"os"

	wkhtmltopdf "github.com/alnah/go-wkhtmltopdf"
	"github.com/alnah/go-wkhtmltopdf/internal/config"
	"github.com/alnah/go-wkhtmltopdf/internal/fileutil"
	"github.com/alnah/go-wkhtmltopdf/internal/markdown"
)

// Exit codes for the wk2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126,
// and 128+SIGINT when interrupted.
const (
	ExitSuccess   = 0 // Successful conversion
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or options
	ExitIO        = 3 // Input not found, output not writable
	ExitRenderer  = 4 // Renderer could not start or reported a failure
	ExitCancelled = 130 // Interrupted by signal
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}

	// Renderer errors (exit 4). Checked first: a launch error may also
	// wrap os.ErrNotExist.
	if errors.Is(err, wkhtmltopdf.ErrLaunch) ||
		errors.Is(err, wkhtmltopdf.ErrDiagnostic) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrNotDirectory) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidOption) ||
		errors.Is(err, config.ErrInvalidLauncher) ||
		errors.Is(err, wkhtmltopdf.ErrReservedOption) ||
		errors.Is(err, wkhtmltopdf.ErrInvalidCommandLine) ||
		errors.Is(err, wkhtmltopdf.ErrEmptyCommand) ||
		errors.Is(err, markdown.ErrUnknownStyle) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrInvalidSet) {
		return ExitUsage
	}

	return ExitGeneral
}

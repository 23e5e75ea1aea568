package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger // Set by runMain from -v/-q; nil discards
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// logger returns the configured logger or one that discards everything.
func (e *Environment) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// newLogger builds the CLI logger on w. Verbose wins over quiet.
func newLogger(w io.Writer, f commonFlags) *log.Logger {
	level := log.InfoLevel
	switch {
	case f.verbose:
		level = log.DebugLevel
	case f.quiet:
		level = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "wk2pdf",
	})
}

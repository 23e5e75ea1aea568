package wkhtmltopdf

import "sync/atomic"

// DefaultCommand is the executable invoked unless SetCommand overrides it.
const DefaultCommand = "wkhtmltopdf"

var command atomic.Pointer[string]

// Command returns the process-wide executable path read by every
// conversion that does not set WithCommand.
func Command() string {
	if p := command.Load(); p != nil {
		return *p
	}
	return DefaultCommand
}

// SetCommand overrides the process-wide executable path. Call it once
// during setup; an empty path restores DefaultCommand.
func SetCommand(path string) {
	if path == "" {
		command.Store(nil)
		return
	}
	command.Store(&path)
}

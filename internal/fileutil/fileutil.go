// Package fileutil provides file and path helpers shared by the CLI and the
// config loader.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when an output path's parent is a file.
var ErrNotDirectory = errors.New("parent path is not a directory")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "letter" -> false (config name)
//   - "./letter.yaml" -> true
//   - "C:\conf\letter.yaml" -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsStdio reports whether path is empty or "-", meaning standard input or
// output.
func IsStdio(path string) bool {
	return path == "" || path == "-"
}

// CheckParentDir verifies that the directory which will hold path exists.
// The renderer writes the file itself and reports a missing directory
// late and vaguely, so callers check up front.
func CheckParentDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("checking output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

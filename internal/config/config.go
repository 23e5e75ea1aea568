package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	wkhtmltopdf "github.com/alnah/go-wkhtmltopdf"
	"github.com/alnah/go-wkhtmltopdf/internal/fileutil"
	"github.com/alnah/go-wkhtmltopdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidOption   = errors.New("invalid option value")
	ErrInvalidLauncher = errors.New("invalid launcher")
)

// AppDir is the directory name used under the user config directory.
const AppDir = "go-wkhtmltopdf"

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxPatternLength = 1024 // Ignore pattern source
	MaxTitleLength   = 200  // Markdown page title
)

// Launcher strategies accepted by the launcher field.
const (
	LauncherAuto   = "auto"
	LauncherShell  = "shell"
	LauncherDirect = "direct"
)

// Config holds everything needed to drive one conversion.
type Config struct {
	Command  string              `yaml:"command"`  // Renderer binary (empty = PATH lookup)
	Launcher string              `yaml:"launcher"` // "auto", "shell", "direct"
	Output   string              `yaml:"output"`   // Output file (empty or "-" = stdout)
	Ignore   IgnoreConfig        `yaml:"ignore"`
	Options  yamlutil.OrderedMap `yaml:"options"` // Renderer options, in emission order
	RawArgs  []string            `yaml:"rawArgs"` // Replaces options and input/output tokens
	Markdown MarkdownConfig      `yaml:"markdown"`
}

// IgnoreConfig lists stderr messages that are warnings, not failures.
type IgnoreConfig struct {
	Exact    []string `yaml:"exact"`
	Patterns []string `yaml:"patterns"` // ECMAScript regular expressions
}

// MarkdownConfig controls Markdown input conversion.
type MarkdownConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Title          string `yaml:"title"`          // <title> of the generated page
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name (default: "github")
}

// DefaultConfig returns a configuration that runs the renderer found on
// PATH with no options.
func DefaultConfig() *Config {
	return &Config{Launcher: LauncherAuto}
}

// Validate checks field lengths, launcher names and ignore patterns.
// Called automatically by LoadConfig, but available for configs built
// from flags and environment.
func (c *Config) Validate() error {
	if err := validateFieldLength("command", c.Command, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output", c.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("markdown.title", c.Markdown.Title, MaxTitleLength); err != nil {
		return err
	}

	switch c.Launcher {
	case "", LauncherAuto, LauncherShell, LauncherDirect:
	default:
		return fmt.Errorf("%w: %q (must be auto, shell, or direct)", ErrInvalidLauncher, c.Launcher)
	}

	for i, p := range c.Ignore.Patterns {
		if err := validateFieldLength(fmt.Sprintf("ignore.patterns[%d]", i), p, MaxPatternLength); err != nil {
			return err
		}
		if _, err := wkhtmltopdf.IgnoreECMAScript(p); err != nil {
			return fmt.Errorf("ignore.patterns[%d]: %w", i, err)
		}
	}

	if _, err := c.options(); err != nil {
		return err
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// ToOptions builds the renderer options described by the config.
func (c *Config) ToOptions() (*wkhtmltopdf.Options, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}

	for _, s := range c.Ignore.Exact {
		opts.Ignore = append(opts.Ignore, wkhtmltopdf.IgnoreString(s))
	}
	for i, p := range c.Ignore.Patterns {
		rule, err := wkhtmltopdf.IgnoreECMAScript(p)
		if err != nil {
			return nil, fmt.Errorf("ignore.patterns[%d]: %w", i, err)
		}
		opts.Ignore = append(opts.Ignore, rule)
	}
	return opts, nil
}

func (c *Config) options() (*wkhtmltopdf.Options, error) {
	opts := &wkhtmltopdf.Options{
		RawArgs: append([]string(nil), c.RawArgs...),
	}
	if !fileutil.IsStdio(c.Output) {
		opts.Output = c.Output
	}
	for _, item := range c.Options {
		v, err := toValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("options.%s: %w", item.Key, err)
		}
		if err := opts.Set(item.Key, v); err != nil {
			return nil, fmt.Errorf("options.%s: %w", item.Key, err)
		}
	}
	return opts, nil
}

// toValue maps a decoded YAML scalar or sequence to an option value.
func toValue(raw any) (wkhtmltopdf.Value, error) {
	switch v := raw.(type) {
	case bool:
		return wkhtmltopdf.Bool(v), nil
	case string:
		return wkhtmltopdf.String(v), nil
	case int:
		return wkhtmltopdf.Int(v), nil
	case int64:
		return wkhtmltopdf.Int(int(v)), nil
	case uint64:
		return wkhtmltopdf.Int(int(v)), nil
	case float64:
		return wkhtmltopdf.Float(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, e := range v {
			switch e.(type) {
			case string, bool, int, int64, uint64, float64:
				items = append(items, fmt.Sprint(e))
			default:
				return wkhtmltopdf.Value{}, fmt.Errorf("%w: sequence items must be scalars", ErrInvalidOption)
			}
		}
		return wkhtmltopdf.Strings(items...), nil
	case nil:
		return wkhtmltopdf.Value{}, fmt.Errorf("%w: missing value (use true to enable a flag)", ErrInvalidOption)
	default:
		return wkhtmltopdf.Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidOption, raw)
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError lists the locations searched for a config file.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-wkhtmltopdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}

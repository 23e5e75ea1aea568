package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	wkhtmltopdf "github.com/alnah/go-wkhtmltopdf"
)

// ErrInvalidSet is returned for a malformed --set argument.
var ErrInvalidSet = errors.New("invalid --set value (want name=value)")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags selects and launches the renderer binary.
type rendererFlags struct {
	command  string
	launcher string
}

// optionFlags holds renderer options given on the command line.
type optionFlags struct {
	set   []string // name=value, applied in order
	toc   bool
	cover string
	raw   []string
}

// ignoreFlags holds stderr messages to treat as warnings.
type ignoreFlags struct {
	exact    []string
	patterns []string
}

// markdownFlags controls Markdown input.
type markdownFlags struct {
	enabled bool
	title   string
	style   string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	renderer rendererFlags
	options  optionFlags
	ignore   ignoreFlags
	markdown markdownFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addRendererFlags adds renderer selection flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.command, "command", "", "wkhtmltopdf binary (default: PATH lookup)")
	fs.StringVar(&f.launcher, "launcher", "", "launch strategy: auto, shell, direct")
}

// addOptionFlags adds renderer option flags to a FlagSet.
func addOptionFlags(fs *flag.FlagSet, f *optionFlags) {
	fs.StringArrayVarP(&f.set, "set", "s", nil, "renderer option name=value (repeatable)")
	fs.BoolVar(&f.toc, "toc", false, "insert a table of contents")
	fs.StringVar(&f.cover, "cover", "", "cover page URL or file")
	fs.StringArrayVar(&f.raw, "raw", nil, "raw renderer argument, replaces all options (repeatable)")
}

// addIgnoreFlags adds ignore rule flags to a FlagSet.
func addIgnoreFlags(fs *flag.FlagSet, f *ignoreFlags) {
	fs.StringArrayVar(&f.exact, "ignore", nil, "stderr message to tolerate (repeatable)")
	fs.StringArrayVar(&f.patterns, "ignore-pattern", nil, "stderr pattern to tolerate, JS regex syntax (repeatable)")
}

// addMarkdownFlags adds Markdown input flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVarP(&f.enabled, "markdown", "m", false, "treat input as Markdown")
	fs.StringVar(&f.title, "title", "", "page title for Markdown input")
	fs.StringVar(&f.style, "highlight-style", "", "code highlight style for Markdown input")
}

// newConvertFlagSet registers every convert flag into a new FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output PDF file (default: stdout)")

	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)
	addOptionFlags(fs, &f.options)
	addIgnoreFlags(fs, &f.ignore)
	addMarkdownFlags(fs, &f.markdown)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseSet splits a --set argument and infers the value type:
// true/false become booleans, integers and decimals are passed unquoted,
// anything else is a string. A bare name enables a boolean flag.
func parseSet(arg string) (string, wkhtmltopdf.Value, error) {
	name, raw, hasValue := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", wkhtmltopdf.Value{}, fmt.Errorf("%w: %q", ErrInvalidSet, arg)
	}
	if !hasValue {
		return name, wkhtmltopdf.Bool(true), nil
	}

	switch raw {
	case "true":
		return name, wkhtmltopdf.Bool(true), nil
	case "false":
		return name, wkhtmltopdf.Bool(false), nil
	}
	// Numbers pass unquoted only when they survive a round trip, so
	// spellings like 007, +5 or 1e3 reach the renderer as typed.
	if n, err := strconv.Atoi(raw); err == nil && strconv.Itoa(n) == raw {
		return name, wkhtmltopdf.Int(n), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == raw {
		return name, wkhtmltopdf.Float(f), nil
	}
	return name, wkhtmltopdf.String(raw), nil
}

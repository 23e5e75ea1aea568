package wkhtmltopdf

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/iancoleman/strcase"
)

// Sentinel tokens telling the tool to read from stdin / write to stdout.
const (
	stdinToken  = "-"
	stdoutToken = "-"
)

// quietFlag is always passed: progress output on stderr would otherwise be
// classified as a fatal diagnostic.
const quietFlag = "--quiet"

// tocOptions only take effect when they directly follow the toc object.
var tocOptions = map[string]bool{
	"disableDottedLines":  true,
	"tocHeaderText":       true,
	"tocLevelIndentation": true,
	"disableTocLinks":     true,
	"tocTextSizeShrink":   true,
	"xslStyleSheet":       true,
}

// isTOCOption matches TOC sub-options in camelCase or kebab-case spelling.
func isTOCOption(name string) bool {
	return tocOptions[strcase.ToLowerCamel(name)]
}

var urlPattern = regexp.MustCompile(`^(https?|file)://`)

// shellEscaper escapes the characters a POSIX shell still interprets
// inside double quotes.
var shellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// IsURL reports whether input is fetched by the tool itself rather than
// piped to it on stdin.
func IsURL(input string) bool {
	return urlPattern.MatchString(input)
}

// BuildArgs serializes opts into the argument vector for command, using
// the quoting rule of the current platform's launcher.
func BuildArgs(command string, opts *Options, input string) []string {
	return argBuilder{command: command, quote: runtime.GOOS != "windows"}.build(opts, input)
}

// argBuilder is BuildArgs with the quoting rule made explicit. Quoting is
// coupled to the launcher: shell-string launch needs it, argument-array
// launch must not have it.
type argBuilder struct {
	command string
	quote   bool
}

func (b argBuilder) build(opts *Options, input string) []string {
	if opts == nil {
		opts = &Options{}
	}
	args := []string{b.command, quietFlag}

	if len(opts.RawArgs) > 0 {
		for _, a := range opts.RawArgs {
			args = append(args, b.quoteString(a))
		}
		return args
	}

	for _, f := range orderFlags(opts.Flags) {
		if isReserved(f.Name) {
			continue
		}
		args = b.appendFlag(args, f)
	}

	if IsURL(input) {
		args = append(args, b.quoteString(input))
	} else {
		args = append(args, stdinToken)
	}
	if opts.Output != "" {
		args = append(args, b.quoteString(opts.Output))
	} else {
		args = append(args, stdoutToken)
	}
	return args
}

func (b argBuilder) appendFlag(args []string, f Flag) []string {
	v := f.Value
	if v.IsFalse() {
		return args
	}
	args = append(args, flagName(f.Name))

	switch v.kind {
	case kindStrings:
		for _, s := range v.list {
			args = append(args, b.quoteString(s))
		}
	case kindString:
		args = append(args, b.quoteString(v.s))
	case kindRaw:
		args = append(args, v.s)
	}
	return args
}

func (b argBuilder) quoteString(s string) string {
	if !b.quote {
		return s
	}
	return quote(s)
}

// quote wraps s in double quotes for /bin/sh.
func quote(s string) string {
	return `"` + shellEscaper.Replace(s) + `"`
}

// flagName maps an option name to the token the tool expects.
func flagName(name string) string {
	switch {
	case isMarker(name):
		return name
	case len(name) == 1:
		return "-" + name
	default:
		return "--" + strcase.ToKebab(name)
	}
}

// orderFlags moves markers after ordinary flags and places the TOC
// sub-options immediately after the toc marker.
func orderFlags(flags []Flag) []Flag {
	ordered := make([]Flag, 0, len(flags))
	var markers []Flag
	hasTOC := false
	for _, f := range flags {
		if isMarker(f.Name) {
			markers = append(markers, f)
			hasTOC = hasTOC || f.Name == MarkerTOC
			continue
		}
		ordered = append(ordered, f)
	}
	ordered = append(ordered, markers...)

	if !hasTOC {
		return ordered
	}

	var sub []Flag
	rest := ordered[:0:0]
	for _, f := range ordered {
		if isTOCOption(f.Name) {
			sub = append(sub, f)
			continue
		}
		rest = append(rest, f)
	}

	out := make([]Flag, 0, len(ordered))
	for _, f := range rest {
		out = append(out, f)
		if f.Name == MarkerTOC {
			out = append(out, sub...)
		}
	}
	return out
}

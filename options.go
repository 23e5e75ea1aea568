package wkhtmltopdf

import (
	"fmt"
	"strconv"
)

// Reserved option names. They are held in dedicated Options fields and
// never serialized as flags.
const (
	optionOutput  = "output"
	optionIgnore  = "ignore"
	optionRawArgs = "rawArgs"
)

// Positional markers are emitted as bare words and sorted after
// every ordinary flag.
const (
	MarkerTOC   = "toc"
	MarkerCover = "cover"
	MarkerPage  = "page"
)

// valueKind tags the variant held by a Value.
type valueKind int

const (
	kindBool valueKind = iota
	kindString
	kindStrings
	kindRaw
)

// Value is the value of a single option: a boolean, a string, a string
// sequence, or a raw scalar (number) that is never quoted.
type Value struct {
	kind valueKind
	b    bool
	s    string
	list []string
}

// Bool returns a boolean value. True emits the flag alone, false emits nothing.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// String returns a string value, emitted quoted after the flag.
func String(s string) Value { return Value{kind: kindString, s: s} }

// Strings returns a sequence value. The flag is emitted once, followed by
// each element as its own quoted token.
func Strings(s ...string) Value {
	return Value{kind: kindStrings, list: append([]string(nil), s...)}
}

// Int returns a numeric value, emitted unquoted.
func Int(n int) Value { return Value{kind: kindRaw, s: strconv.Itoa(n)} }

// Float returns a numeric value, emitted unquoted.
func Float(f float64) Value {
	return Value{kind: kindRaw, s: strconv.FormatFloat(f, 'f', -1, 64)}
}

// IsFalse reports whether v is the boolean false, which suppresses the flag.
func (v Value) IsFalse() bool { return v.kind == kindBool && !v.b }

// String renders the value for logs and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindStrings:
		return fmt.Sprintf("%q", v.list)
	default:
		return v.s
	}
}

// Flag is one named option in emission order.
type Flag struct {
	Name  string
	Value Value
}

// Options configures a single conversion.
//
// Flags keeps insertion order: the tool reads its objects (cover, toc,
// page) and their sub-options positionally, so order is significant.
type Options struct {
	// Output is the destination file. Empty streams the document to stdout.
	Output string

	// Ignore lists diagnostics that are swallowed instead of treated as fatal.
	Ignore []IgnoreRule

	// RawArgs, when non-empty, replaces all other serialization. Each
	// element is quoted and passed verbatim; input and output tokens are
	// not appended, the caller encodes them itself.
	RawArgs []string

	// Flags are the pass-through tool options, camelCase or kebab-case names.
	Flags []Flag
}

// Set assigns value to name, replacing an existing flag in place or
// appending a new one. Reserved names must be set through their fields.
func (o *Options) Set(name string, value Value) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrReservedOption)
	}
	if isReserved(name) {
		return fmt.Errorf("%w: %q", ErrReservedOption, name)
	}
	for i := range o.Flags {
		if o.Flags[i].Name == name {
			o.Flags[i].Value = value
			return nil
		}
	}
	o.Flags = append(o.Flags, Flag{Name: name, Value: value})
	return nil
}

// Get returns the value stored for name.
func (o *Options) Get(name string) (Value, bool) {
	for _, f := range o.Flags {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Clone returns a deep copy so a caller can reuse a template safely.
func (o *Options) Clone() *Options {
	if o == nil {
		return &Options{}
	}
	c := &Options{
		Output:  o.Output,
		Ignore:  append([]IgnoreRule(nil), o.Ignore...),
		RawArgs: append([]string(nil), o.RawArgs...),
		Flags:   make([]Flag, len(o.Flags)),
	}
	for i, f := range o.Flags {
		c.Flags[i] = f
		if f.Value.list != nil {
			c.Flags[i].Value.list = append([]string(nil), f.Value.list...)
		}
	}
	return c
}

func isReserved(name string) bool {
	switch name {
	case optionOutput, optionIgnore, optionRawArgs:
		return true
	}
	return false
}

func isMarker(name string) bool {
	switch name {
	case MarkerTOC, MarkerCover, MarkerPage:
		return true
	}
	return false
}

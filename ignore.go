package wkhtmltopdf

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// IgnoreRule decides whether a diagnostic message is a warning to swallow.
type IgnoreRule interface {
	Match(message string) bool
}

// IgnoreString matches a message exactly.
type IgnoreString string

// Match reports whether message equals the rule text.
func (s IgnoreString) Match(message string) bool { return string(s) == message }

// patternRule matches with a Go regular expression.
type patternRule struct {
	re *regexp.Regexp
}

// IgnorePattern matches messages against re.
func IgnorePattern(re *regexp.Regexp) IgnoreRule {
	return patternRule{re: re}
}

func (p patternRule) Match(message string) bool {
	return p.re != nil && p.re.MatchString(message)
}

func (p patternRule) String() string { return "/" + p.re.String() + "/" }

// ecmaRule matches with a JavaScript-compatible expression.
type ecmaRule struct {
	re *regexp2.Regexp
}

// IgnoreECMAScript compiles pattern with JavaScript regex semantics
// (lookaheads, backreferences).
func IgnoreECMAScript(pattern string) (IgnoreRule, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore pattern %q: %w", pattern, err)
	}
	return ecmaRule{re: re}, nil
}

func (e ecmaRule) Match(message string) bool {
	ok, err := e.re.MatchString(message)
	return err == nil && ok
}

func (e ecmaRule) String() string { return "/" + e.re.String() + "/" }

// matchesAny reports whether any rule matches message.
func matchesAny(rules []IgnoreRule, message string) bool {
	for _, r := range rules {
		if r != nil && r.Match(message) {
			return true
		}
	}
	return false
}

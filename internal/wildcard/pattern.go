// Package wildcard compiles single path-segment wildcard expressions into
// anchored matchers.
//
// Supported tokens:
//
//	'*' zero or more characters
//	'?' exactly one character
//	'#' exactly one digit
//
// Every other permitted character matches itself.
package wildcard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPattern is returned when a segment contains a character
	// outside the permitted set.
	ErrInvalidPattern = errors.New("invalid pattern")

	// permittedPattern accepts word characters, whitespace, the wildcard
	// tokens and the punctuation commonly found in file names.
	permittedPattern = regexp.MustCompile(`^[\pL\pN_\s*?#.\-+,@~=]+$`)
)

// Tokens lists the wildcard characters understood by Compile.
const Tokens = "*?#"

// Pattern is anything that can test a candidate and compare itself with
// another pattern of the same kind.
type Pattern[T any] interface {
	Match(candidate T) bool
	Equal(other Pattern[T]) bool
}

// Segment is a compiled, anchored matcher for one path segment.
type Segment struct {
	source string
	re     *regexp.Regexp
}

// Compile translates a wildcard segment into a Segment.
func Compile(segment string) (*Segment, error) {
	if !permittedPattern.MatchString(segment) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, segment)
	}

	re, err := regexp.Compile(toRegexp(segment))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, segment, err)
	}

	return &Segment{source: segment, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(segment string) *Segment {
	s, err := Compile(segment)
	if err != nil {
		panic(err)
	}
	return s
}

// HasTokens reports whether s contains any wildcard token.
func HasTokens(s string) bool {
	return strings.ContainsAny(s, Tokens)
}

func toRegexp(segment string) string {
	var b strings.Builder
	b.WriteString(`^(?s:`)
	for _, r := range segment {
		switch r {
		case '?':
			b.WriteString(`.`)
		case '*':
			b.WriteString(`.*`)
		case '#':
			b.WriteString(`\d`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`)$`)
	return b.String()
}

// Match reports whether candidate matches the whole segment pattern.
func (s *Segment) Match(candidate string) bool {
	return s.re.MatchString(candidate)
}

// Equal reports whether other is a Segment with the same compiled form.
func (s *Segment) Equal(other Pattern[string]) bool {
	o, ok := other.(*Segment)
	if !ok {
		return false
	}
	if s == nil || o == nil {
		return s == o
	}
	return s.re.String() == o.re.String()
}

// Source returns the wildcard text the segment was compiled from.
func (s *Segment) Source() string {
	return s.source
}

// String returns the compiled regular expression.
func (s *Segment) String() string {
	return s.re.String()
}

// Package wpath resolves path expressions containing wildcard segments into
// the concrete filesystem paths they match.
//
// An expression is split into a wildcard-free root, which must exist, and a
// selector: the remaining segments, each compiled into an anchored pattern.
// Matching walks the tree below the root breadth-first, one selector pattern
// per level, and yields every path whose depth below the root equals the
// selector length.
package wpath

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/justrnr500/wildcd/internal/wildcard"
)

var (
	// ErrInvalidRoot is returned when the wildcard-free prefix of an
	// expression does not exist or cannot be accessed.
	ErrInvalidRoot = errors.New("invalid root")

	// ErrPermissionDenied is reported through WarnFunc when a path met
	// during traversal cannot be read.
	ErrPermissionDenied = errors.New("permission denied")
)

// WarnFunc receives the paths skipped during traversal and the reason.
type WarnFunc func(path string, reason error)

// Option configures Compile.
type Option func(*options)

type options struct {
	fs      FS
	base    string
	warn    WarnFunc
	exclude []string
}

// WithFS sets the filesystem to resolve against. Defaults to OSFS.
func WithFS(fsys FS) Option {
	return func(o *options) { o.fs = fsys }
}

// WithBase sets the directory relative expressions are resolved against.
// Defaults to the working directory.
func WithBase(dir string) Option {
	return func(o *options) { o.base = dir }
}

// WithWarn sets the sink for skipped paths.
func WithWarn(fn WarnFunc) Option {
	return func(o *options) { o.warn = fn }
}

// WithExclude prunes candidates matching any of the doublestar globs.
func WithExclude(globs ...string) Option {
	return func(o *options) { o.exclude = append(o.exclude, globs...) }
}

// WildcardPath is a compiled path expression.
type WildcardPath struct {
	root     string
	selector []string
	pattern  wildcard.Sequence
	fs       FS
	warn     WarnFunc
	exclude  *Exclude
}

// Compile resolves expr against the base directory, splits it into root and
// selector and compiles the selector. It fails with ErrInvalidRoot when the
// root cannot be stat'ed and with wildcard.ErrInvalidPattern when a selector
// segment contains a disallowed character.
func Compile(expr string, opts ...Option) (*WildcardPath, error) {
	o := options{fs: OSFS{}}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := absolute(expr, o.base)
	if err != nil {
		return nil, err
	}

	root, selector := Split(abs)
	if _, err := o.fs.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist: %w", ErrInvalidRoot, root, err)
		}
		return nil, fmt.Errorf("%w: %s is not accessible: %w", ErrInvalidRoot, root, err)
	}

	pattern, err := wildcard.CompileSequence(selector)
	if err != nil {
		return nil, err
	}

	exclude, err := NewExclude(o.exclude)
	if err != nil {
		return nil, err
	}

	return &WildcardPath{
		root:     root,
		selector: selector,
		pattern:  pattern,
		fs:       o.fs,
		warn:     o.warn,
		exclude:  exclude,
	}, nil
}

func absolute(expr, base string) (string, error) {
	if expr == "" {
		expr = "."
	}
	if filepath.IsAbs(expr) {
		return filepath.Clean(expr), nil
	}
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		base = wd
	}
	return filepath.Join(base, expr), nil
}

// Split divides a path expression at its first segment containing a
// wildcard token. Root keeps any volume name and leading separator of path;
// it is "." for a relative expression that starts with a wildcard segment.
// The selector is empty when path has no wildcard segment.
func Split(path string) (root string, selector []string) {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]
	prefix := vol
	if rest != "" && os.IsPathSeparator(rest[0]) {
		prefix += string(filepath.Separator)
	}

	segments := Segments(rest)
	i := 0
	for i < len(segments) && !wildcard.HasTokens(segments[i]) {
		i++
	}

	root = prefix + filepath.Join(segments[:i]...)
	if root == "" {
		root = "."
	}
	if i < len(segments) {
		selector = segments[i:]
	}
	return root, selector
}

// Segments splits path into its non-empty components.
func Segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
}

// Root returns the wildcard-free prefix.
func (w *WildcardPath) Root() string {
	return w.root
}

// Selector returns the wildcard-bearing segments in shallow-to-deep order.
func (w *WildcardPath) Selector() []string {
	return append([]string(nil), w.selector...)
}

// Pattern returns the compiled selector.
func (w *WildcardPath) Pattern() wildcard.Sequence {
	return w.pattern
}

// Depth returns the number of segments below the root a match has.
func (w *WildcardPath) Depth() int {
	return len(w.pattern)
}

// Equal reports whether both paths share a root and an equal pattern.
func (w *WildcardPath) Equal(other *WildcardPath) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.root == other.root && w.pattern.Equal(other.pattern)
}

func (w *WildcardPath) String() string {
	if len(w.selector) == 0 {
		return w.root
	}
	return filepath.Join(append([]string{w.root}, w.selector...)...)
}

// Matches starts a new traversal. The returned iterator is consumed lazily
// and cannot be rewound.
func (w *WildcardPath) Matches() *Iterator {
	return newIterator(w)
}

// MatchingPaths returns a fresh lazy sequence of every matching path.
func (w *WildcardPath) MatchingPaths() iter.Seq[string] {
	return w.Matches().All()
}

package wpath

import (
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// Exclude prunes traversal candidates matching any of a set of globs.
// Globs use doublestar syntax (** matches any depth) and are tested against
// both the candidate's slash path relative to the root and its base name.
type Exclude struct {
	globs []string
}

// NewExclude validates globs and returns an Exclude.
func NewExclude(globs []string) (*Exclude, error) {
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("exclude glob %q: %w", g, doublestar.ErrBadPattern)
		}
	}
	return &Exclude{globs: append([]string(nil), globs...)}, nil
}

// Match checks if rel (a slash path relative to the root) is excluded.
func (e *Exclude) Match(rel string) bool {
	if e == nil || rel == "" || len(e.globs) == 0 {
		return false
	}

	base := path.Base(rel)
	for _, g := range e.globs {
		if matched, err := doublestar.Match(g, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(g, base); err == nil && matched {
			return true
		}
	}
	return false
}

// Globs returns the configured globs.
func (e *Exclude) Globs() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.globs...)
}

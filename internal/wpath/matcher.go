package wpath

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"path/filepath"
)

type node struct {
	path  string
	rel   string // slash path below the root
	depth int
}

// Iterator walks the tree below a root breadth-first, pruning each level
// with the selector pattern for that depth.
type Iterator struct {
	w       *WildcardPath
	queue   []node
	visited int
}

func newIterator(w *WildcardPath) *Iterator {
	return &Iterator{
		w:     w,
		queue: []node{{path: w.root}},
	}
}

// Next returns the next matching path. The second result is false once the
// traversal is exhausted.
func (it *Iterator) Next() (string, bool) {
	depth := it.w.Depth()
	for len(it.queue) > 0 {
		n := it.queue[0]
		it.queue[0] = node{}
		it.queue = it.queue[1:]
		it.visited++

		if !it.w.fs.Readable(n.path) {
			it.skip(n.path, ErrPermissionDenied)
			continue
		}

		if n.depth == depth {
			return n.path, true
		}

		info, err := it.w.fs.Stat(n.path)
		if err != nil {
			it.skip(n.path, reason(err))
			continue
		}
		if !info.IsDir() {
			continue
		}

		names, err := it.w.fs.ReadDirNames(n.path)
		if err != nil {
			it.skip(n.path, reason(err))
			continue
		}

		pattern := it.w.pattern.At(n.depth)
		for _, name := range names {
			if !pattern.Match(name) {
				continue
			}
			rel := path.Join(n.rel, name)
			if it.w.exclude.Match(rel) {
				continue
			}
			it.queue = append(it.queue, node{
				path:  filepath.Join(n.path, name),
				rel:   rel,
				depth: n.depth + 1,
			})
		}
	}
	it.queue = nil
	return "", false
}

// All returns the remaining matches as a sequence. Ranging over it consumes
// the iterator; stopping early leaves the rest of the tree unvisited.
func (it *Iterator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Visited returns how many paths have been taken off the queue so far.
func (it *Iterator) Visited() int {
	return it.visited
}

// Pending returns how many paths are queued for inspection.
func (it *Iterator) Pending() int {
	return len(it.queue)
}

func (it *Iterator) skip(p string, why error) {
	if it.w.warn != nil {
		it.w.warn(p, why)
	}
}

func reason(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

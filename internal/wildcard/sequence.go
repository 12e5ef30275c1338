package wildcard

import "strings"

var (
	_ Pattern[string]   = (*Segment)(nil)
	_ Pattern[[]string] = Sequence(nil)
)

// Sequence is an ordered list of segment patterns matched positionally
// against an ordered list of path segments.
type Sequence []*Segment

// CompileSequence compiles every segment in order.
func CompileSequence(segments []string) (Sequence, error) {
	seq := make(Sequence, 0, len(segments))
	for _, s := range segments {
		p, err := Compile(s)
		if err != nil {
			return nil, err
		}
		seq = append(seq, p)
	}
	return seq, nil
}

// Match reports whether segments has the same length as the sequence and
// every segment matches the pattern at its position. Sequences of unequal
// length never match; use MatchPrefix for partial paths.
func (q Sequence) Match(segments []string) bool {
	if len(segments) != len(q) {
		return false
	}
	return q.MatchPrefix(segments)
}

// MatchPrefix reports whether segments, which may be shorter than the
// sequence, matches the leading patterns. A list longer than the sequence
// never matches.
func (q Sequence) MatchPrefix(segments []string) bool {
	if len(segments) > len(q) {
		return false
	}
	for i, s := range segments {
		if !q[i].Match(s) {
			return false
		}
	}
	return true
}

// Equal reports whether other is a Sequence of pairwise equal patterns.
func (q Sequence) Equal(other Pattern[[]string]) bool {
	o, ok := other.(Sequence)
	if !ok || len(o) != len(q) {
		return false
	}
	for i := range q {
		if !q[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// At returns the pattern for depth i below the root.
func (q Sequence) At(i int) *Segment {
	return q[i]
}

func (q Sequence) String() string {
	parts := make([]string, len(q))
	for i, p := range q {
		parts[i] = p.Source()
	}
	return strings.Join(parts, "/")
}

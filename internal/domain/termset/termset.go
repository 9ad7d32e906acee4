// Package termset loads the deny-list into an ordered, deduplicated set of
// normalized terms. The set is frozen after construction and shared by every
// matcher and by the automaton built from it.
package termset

import "github.com/corey/orgscan/internal/ports"

// TermSet is an ordered set of normalized, non-empty deny-list terms.
// Order is the insertion order of each term's first occurrence.
type TermSet struct {
	terms []string
	index map[string]int
}

// FromLines builds a TermSet from raw deny-list lines. Blank lines are
// dropped, the rest normalized and deduplicated.
func FromLines(lines []string) *TermSet {
	n := NewNormalizer()
	ts := &TermSet{index: make(map[string]int, len(lines))}
	for _, line := range lines {
		term := n.Normalize(line)
		if term == "" {
			continue
		}
		if _, dup := ts.index[term]; dup {
			continue
		}
		ts.index[term] = len(ts.terms)
		ts.terms = append(ts.terms, term)
	}
	return ts
}

// Load reads the deny-list at path through r and builds the set. Callers
// pass the line reader used for documents, set to UTF-8, so a byte-order
// mark, invalid bytes and line endings are treated alike in both inputs.
// A missing or unreadable file is a *ports.ConfigurationError: nothing can be
// checked without a deny-list.
func Load(r ports.DocumentReader, path string) (*TermSet, error) {
	lines, err := r.ReadLines(path)
	if err != nil {
		return nil, &ports.ConfigurationError{Source: path, Err: err}
	}
	return FromLines(lines), nil
}

// Terms returns a copy of the terms in insertion order.
func (ts *TermSet) Terms() []string {
	out := make([]string, len(ts.terms))
	copy(out, ts.terms)
	return out
}

// Len returns the number of distinct terms.
func (ts *TermSet) Len() int { return len(ts.terms) }

// Contains reports whether the normalized term is in the set.
func (ts *TermSet) Contains(term string) bool {
	_, ok := ts.index[term]
	return ok
}

// Index returns the position of term, or -1.
func (ts *TermSet) Index(term string) int {
	if i, ok := ts.index[term]; ok {
		return i
	}
	return -1
}

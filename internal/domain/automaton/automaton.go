// Package automaton implements Aho-Corasick multi-pattern matching over runes.
//
// States live in an arena and are addressed by integer index. Transitions are
// one flat table keyed by (state, rune); failure links, dictionary-suffix
// links, and outputs are parallel slices indexed by state. Nothing points
// backwards through Go pointers, so failure links toward the root form no
// ownership cycles.
//
// Build cost is proportional to the total length of all terms; a scan costs
// time proportional to the text length plus the number of occurrences.
package automaton

import "unicode/utf8"

// root is the state for the empty prefix.
const root int32 = 0

// none marks a missing output or dictionary link.
const none int32 = -1

// edge is a key into the flat transition table.
type edge struct {
	from int32
	r    rune
}

// Occurrence is one term found in a text. Start and End are byte offsets
// (End exclusive); Term indexes Terms().
type Occurrence struct {
	Term  int
	Start int
	End   int
}

// Automaton is immutable after Build and safe for concurrent scans.
type Automaton struct {
	terms []string
	next  map[edge]int32
	fail  []int32
	dict  []int32 // nearest state on the failure chain that ends a term
	out   []int32 // term ending exactly at this state, or none
}

// Build compiles the automaton from terms. Empty terms are ignored; a term
// repeated later in the slice reports under its first index.
func Build(terms []string) *Automaton {
	a := &Automaton{
		terms: make([]string, len(terms)),
		next:  make(map[edge]int32),
		fail:  []int32{root},
		dict:  []int32{none},
		out:   []int32{none},
	}
	copy(a.terms, terms)

	// children records the trie edges in insertion order so the BFS below is
	// deterministic. It is only needed during construction.
	children := [][]edge{nil}

	// 1. Trie
	for ti, term := range a.terms {
		if term == "" {
			continue
		}
		cur := root
		for _, r := range term {
			nxt, ok := a.next[edge{cur, r}]
			if !ok {
				nxt = int32(len(a.fail))
				a.next[edge{cur, r}] = nxt
				a.fail = append(a.fail, root)
				a.dict = append(a.dict, none)
				a.out = append(a.out, none)
				children = append(children, nil)
				children[cur] = append(children[cur], edge{nxt, r})
			}
			cur = nxt
		}
		if a.out[cur] == none {
			a.out[cur] = int32(ti)
		}
	}

	// 2. Failure and dictionary links, breadth first so every state's
	// failure target (strictly shallower) is final before it is read.
	queue := make([]int32, 0, len(a.fail))
	for _, c := range children[root] {
		queue = append(queue, c.from)
	}
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, c := range children[u] {
			v, r := c.from, c.r
			queue = append(queue, v)

			f := a.fail[u]
			for {
				if t, ok := a.next[edge{f, r}]; ok && t != v {
					a.fail[v] = t
					break
				}
				if f == root {
					a.fail[v] = root
					break
				}
				f = a.fail[f]
			}

			fv := a.fail[v]
			if a.out[fv] != none {
				a.dict[v] = fv
			} else {
				a.dict[v] = a.dict[fv]
			}
		}
	}

	return a
}

// step follows failure links until a transition on r exists or the root is
// reached.
func (a *Automaton) step(s int32, r rune) int32 {
	for {
		if t, ok := a.next[edge{s, r}]; ok {
			return t
		}
		if s == root {
			return root
		}
		s = a.fail[s]
	}
}

// Scan reports every occurrence of every term in text, including terms that
// overlap or are suffixes of one another. Occurrences are ordered by End;
// at the same End, longer terms come first.
func (a *Automaton) Scan(text string) []Occurrence {
	var found []Occurrence
	a.walk(text, func(term int32, end int) bool {
		start := end - len(a.terms[term])
		if start < 0 {
			start = 0
		}
		found = append(found, Occurrence{Term: int(term), Start: start, End: end})
		return true
	})
	return found
}

// Contains reports whether any term occurs in text. It stops at the first
// occurrence; the set of texts it accepts is exactly those for which Scan
// returns a non-empty result.
func (a *Automaton) Contains(text string) bool {
	hit := false
	a.walk(text, func(int32, int) bool {
		hit = true
		return false
	})
	return hit
}

// walk drives the automaton over text and calls visit for each occurrence
// until visit returns false.
func (a *Automaton) walk(text string, visit func(term int32, end int) bool) {
	if len(a.fail) == 1 {
		return
	}
	s := root
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		s = a.step(s, r)

		for o := s; o != none; o = a.dict[o] {
			if a.out[o] == none {
				continue
			}
			if !visit(a.out[o], i) {
				return
			}
		}
	}
}

// Terms returns a copy of the terms the automaton was built from.
func (a *Automaton) Terms() []string {
	out := make([]string, len(a.terms))
	copy(out, a.terms)
	return out
}

// Term returns the term at index i.
func (a *Automaton) Term(i int) string { return a.terms[i] }

// States returns the number of states, root included.
func (a *Automaton) States() int { return len(a.fail) }

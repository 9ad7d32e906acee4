package bench

import (
	"github.com/corey/orgscan/internal/domain/automaton"
	"github.com/corey/orgscan/internal/domain/segment"
	"github.com/corey/orgscan/internal/domain/termset"
	"github.com/corey/orgscan/internal/ports"
)

// Mismatch is a block on which the automaton and a reference matcher disagree.
type Mismatch struct {
	Document  string `json:"document" yaml:"document"`
	Block     int    `json:"block" yaml:"block"`
	Automaton bool   `json:"automaton" yaml:"automaton"`
	Reference bool   `json:"reference" yaml:"reference"`

	// Terms each side found in the block, distinct and in first-seen order.
	AutomatonTerms []string `json:"automaton_terms,omitempty" yaml:"automaton-terms,omitempty"`
	ReferenceTerms []string `json:"reference_terms,omitempty" yaml:"reference-terms,omitempty"`
}

// Verify makes one untimed pass over the harness documents and compares the
// automaton strategy with ref line by line. Any returned mismatch means one of
// the two implementations is wrong.
func (h *Harness) Verify(ref ports.ReferenceMatcher) []Mismatch {
	ac := h.Context.Automaton
	var mismatches []Mismatch

	segment.New(h.Reader).Walk(h.Documents, termset.NewNormalizer(), func(b ports.Block) {
		ours, theirs := false, false
		for _, line := range b.Normalized {
			ours = ours || ac.Contains(line)
			theirs = theirs || ref.Contains(line)
		}
		if ours != theirs {
			mismatches = append(mismatches, Mismatch{
				Document:       b.Document,
				Block:          b.Number,
				Automaton:      ours,
				Reference:      theirs,
				AutomatonTerms: automatonTerms(ac, b.Normalized),
				ReferenceTerms: referenceTerms(ref, b.Normalized),
			})
		}
	})
	return mismatches
}

func automatonTerms(ac *automaton.Automaton, lines []string) []string {
	var terms []string
	seen := make(map[int]bool)
	for _, line := range lines {
		for _, o := range ac.Scan(line) {
			if !seen[o.Term] {
				seen[o.Term] = true
				terms = append(terms, ac.Term(o.Term))
			}
		}
	}
	return terms
}

func referenceTerms(ref ports.ReferenceMatcher, lines []string) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, t := range ref.Matches(line) {
			if !seen[t] {
				seen[t] = true
				terms = append(terms, t)
			}
		}
	}
	return terms
}

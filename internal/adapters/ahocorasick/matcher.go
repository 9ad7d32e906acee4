// Package ahocorasick wraps third-party Aho-Corasick libraries behind
// ports.ReferenceMatcher. They serve as independent references for checking
// the in-house automaton: a block the automaton flags must be flagged by the
// reference and vice versa.
package ahocorasick

import (
	"fmt"

	bobu "github.com/BobuSumisu/aho-corasick"
	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/corey/orgscan/internal/ports"
)

// Backend names accepted by New.
const (
	BackendPetar      = "petar"
	BackendBobuSumisu = "bobusumisu"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendPetar, BackendBobuSumisu}
}

// New builds the named reference matcher over patterns. Empty patterns are
// dropped (they would match every text), as are repeats.
func New(backend string, patterns []string) (ports.ReferenceMatcher, error) {
	p := make([]string, 0, len(patterns))
	seen := make(map[string]bool, len(patterns))
	for _, s := range patterns {
		if s != "" && !seen[s] {
			seen[s] = true
			p = append(p, s)
		}
	}

	switch backend {
	case BackendPetar:
		return newPetar(p), nil
	case BackendBobuSumisu:
		return newBobu(p), nil
	default:
		return nil, &ports.ConfigurationError{
			Source: "verify",
			Err:    fmt.Errorf("unknown reference backend %q (want one of %v)", backend, Backends()),
		}
	}
}

// Petar uses github.com/petar-dambovaliev/aho-corasick compiled to a DFA.
type Petar struct {
	automaton aho.AhoCorasick
	patterns  []string
}

func newPetar(patterns []string) *Petar {
	m := &Petar{patterns: patterns}
	if len(patterns) == 0 {
		return m
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(patterns)
	return m
}

func (m *Petar) Name() string { return BackendPetar }

// Contains reports whether any pattern occurs in text.
func (m *Petar) Contains(text string) bool {
	if len(m.patterns) == 0 {
		return false
	}
	return len(m.automaton.FindAll(text)) > 0
}

// Matches returns the distinct patterns found in text, in first-seen order.
func (m *Petar) Matches(text string) []string {
	if len(m.patterns) == 0 {
		return nil
	}
	iter := m.automaton.IterOverlappingByte([]byte(text))
	seen := make(map[int]bool)
	var result []string
	for next := iter.Next(); next != nil; next = iter.Next() {
		idx := next.Pattern()
		if !seen[idx] {
			seen[idx] = true
			result = append(result, m.patterns[idx])
		}
	}
	return result
}

// Bobu uses github.com/BobuSumisu/aho-corasick, a double-array trie.
type Bobu struct {
	trie     *bobu.Trie
	patterns []string
}

func newBobu(patterns []string) *Bobu {
	m := &Bobu{patterns: patterns}
	if len(patterns) == 0 {
		return m
	}
	m.trie = bobu.NewTrieBuilder().AddStrings(patterns).Build()
	return m
}

func (m *Bobu) Name() string { return BackendBobuSumisu }

// Contains reports whether any pattern occurs in text.
func (m *Bobu) Contains(text string) bool {
	if m.trie == nil {
		return false
	}
	return len(m.trie.MatchString(text)) > 0
}

// Matches returns the distinct patterns found in text, in first-seen order.
func (m *Bobu) Matches(text string) []string {
	if m.trie == nil {
		return nil
	}
	seen := make(map[string]bool)
	var result []string
	for _, hit := range m.trie.MatchString(text) {
		s := hit.MatchString()
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}

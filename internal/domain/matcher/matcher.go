// Package matcher holds the four block-classification strategies compared by
// the benchmark harness. Each one receives a block's normalized lines and
// reports whether the block mentions a deny-listed term.
//
// NaiveSubstring, CaseInsensitiveSubstring and AutomatonMatch all implement
// substring containment and agree on every block. ExactLineSet is stricter:
// it only flags a block when an entire normalized line equals a term, so it
// flags a subset of what the other three flag. That divergence is kept on
// purpose as the baseline in the comparison.
package matcher

import (
	"fmt"

	"github.com/corey/orgscan/internal/domain/automaton"
	"github.com/corey/orgscan/internal/domain/termset"
)

// Kind selects one of the four strategies.
type Kind int

const (
	NaiveSubstring Kind = iota + 1
	ExactLineSet
	CaseInsensitiveSubstring
	AutomatonMatch
)

// Kinds returns every strategy in harness order.
func Kinds() []Kind {
	return []Kind{NaiveSubstring, ExactLineSet, CaseInsensitiveSubstring, AutomatonMatch}
}

// String returns the stable identifier used in exports and flags.
func (k Kind) String() string {
	switch k {
	case NaiveSubstring:
		return "naive-substring"
	case ExactLineSet:
		return "exact-line-set"
	case CaseInsensitiveSubstring:
		return "case-insensitive-substring"
	case AutomatonMatch:
		return "aho-corasick"
	default:
		return "unknown"
	}
}

// Title returns the human-readable name shown in reports.
func (k Kind) Title() string {
	switch k {
	case NaiveSubstring:
		return "Nested loop (substring)"
	case ExactLineSet:
		return "Hash set (exact lines)"
	case CaseInsensitiveSubstring:
		return "Case-insensitive index"
	case AutomatonMatch:
		return "Aho-Corasick automaton"
	default:
		return "unknown"
	}
}

// ParseKind maps an identifier from String back to its Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown matcher %q", s)
}

// Context is the immutable matching context shared by every strategy and
// pass: the frozen term list and the automaton compiled from it.
type Context struct {
	Terms     []string
	Automaton *automaton.Automaton
}

// NewContext freezes ts and builds the automaton once.
func NewContext(ts *termset.TermSet) *Context {
	terms := ts.Terms()
	return &Context{Terms: terms, Automaton: automaton.Build(terms)}
}

// Matcher classifies one block.
type Matcher interface {
	Kind() Kind
	// Match reports whether the block, given as normalized lines, violates.
	Match(lines []string) bool
}

// New returns the strategy for k bound to ctx.
func New(k Kind, ctx *Context) (Matcher, error) {
	switch k {
	case NaiveSubstring:
		return naive{terms: ctx.Terms}, nil
	case ExactLineSet:
		return exactSet{terms: ctx.Terms}, nil
	case CaseInsensitiveSubstring:
		return foldIndex{terms: ctx.Terms}, nil
	case AutomatonMatch:
		if ctx.Automaton == nil {
			return nil, fmt.Errorf("matcher %s: automaton not built", k)
		}
		return ahoMatch{ac: ctx.Automaton}, nil
	default:
		return nil, fmt.Errorf("matcher: unknown kind %d", int(k))
	}
}

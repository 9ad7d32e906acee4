package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/corey/orgscan/internal/domain/automaton"
)

// naive checks every term against every line: O(lines × terms) per block.
type naive struct {
	terms []string
}

func (naive) Kind() Kind { return NaiveSubstring }

func (m naive) Match(lines []string) bool {
	for _, line := range lines {
		for _, term := range m.terms {
			if strings.Contains(line, term) {
				return true
			}
		}
	}
	return false
}

// exactSet flags a block only when a whole line equals a term.
type exactSet struct {
	terms []string
}

func (exactSet) Kind() Kind { return ExactLineSet }

func (m exactSet) Match(lines []string) bool {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	for _, term := range m.terms {
		if _, ok := set[term]; ok {
			return true
		}
	}
	return false
}

// foldIndex searches each term with a rune-wise case-insensitive index.
type foldIndex struct {
	terms []string
}

func (foldIndex) Kind() Kind { return CaseInsensitiveSubstring }

func (m foldIndex) Match(lines []string) bool {
	for _, line := range lines {
		for _, term := range m.terms {
			if indexFold(line, term) >= 0 {
				return true
			}
		}
	}
	return false
}

// indexFold returns the byte offset of the first occurrence of substr in s,
// comparing runes by their lowercase mapping, or -1.
//
// Runes compare equal when unicode.ToLower maps them to the same rune. Simple
// case folding (strings.EqualFold) is not used: it also equates distinct
// lowercase runes such as 'ſ' and 's', which would let this strategy flag
// blocks that the other substring strategies do not.
func indexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	for i := 0; i < len(s); {
		if hasPrefixFold(s[i:], substr) {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, psize := utf8.DecodeRuneInString(prefix)
		sr, ssize := utf8.DecodeRuneInString(s)
		if pr != sr && unicode.ToLower(pr) != unicode.ToLower(sr) {
			return false
		}
		prefix = prefix[psize:]
		s = s[ssize:]
	}
	return true
}

// ahoMatch runs each line through the shared automaton.
type ahoMatch struct {
	ac *automaton.Automaton
}

func (ahoMatch) Kind() Kind { return AutomatonMatch }

func (m ahoMatch) Match(lines []string) bool {
	for _, line := range lines {
		if m.ac.Contains(line) {
			return true
		}
	}
	return false
}

package termset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps a raw line or deny-list entry to its matching form:
//  1. Trim surrounding whitespace
//  2. Replace invalid UTF-8 with U+FFFD, as the document decoder does
//  3. Lowercase (language-neutral), with final sigma folded to σ
//  4. Compose to NFC so precomposed and combining spellings compare equal
//
// Normalizing an already-normalized string returns it unchanged.
//
// A Normalizer holds a stateful caser and must not be shared between
// goroutines; each pass creates its own.
type Normalizer struct {
	lower cases.Caser
}

// NewNormalizer returns a ready-to-use Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{lower: cases.Lower(language.Und)}
}

// Normalize returns the matching form of s.
func (n *Normalizer) Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(n.lower.String(s), "ς", "σ")
	return norm.NFC.String(s)
}

// NormalizeLines normalizes every line into a new slice.
func (n *Normalizer) NormalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = n.Normalize(l)
	}
	return out
}

// IsBlank reports whether a line separates blocks (empty or whitespace only).
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

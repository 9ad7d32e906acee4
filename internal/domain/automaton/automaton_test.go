package automaton

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce lists every occurrence by trying each term at each byte offset.
func bruteForce(terms []string, text string) []Occurrence {
	var found []Occurrence
	seen := make(map[string]bool)
	for ti, term := range terms {
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		for i := 0; i+len(term) <= len(text); i++ {
			if strings.HasPrefix(text[i:], term) {
				found = append(found, Occurrence{Term: ti, Start: i, End: i + len(term)})
			}
		}
	}
	return found
}

func sortOccurrences(occ []Occurrence) {
	sort.Slice(occ, func(i, j int) bool {
		if occ[i].End != occ[j].End {
			return occ[i].End < occ[j].End
		}
		if occ[i].Start != occ[j].Start {
			return occ[i].Start < occ[j].Start
		}
		return occ[i].Term < occ[j].Term
	})
}

func termsFound(a *Automaton, text string) []string {
	var out []string
	for _, o := range a.Scan(text) {
		out = append(out, a.Term(o.Term))
	}
	return out
}

// =============================================================================
// Matching
// =============================================================================

func TestAutomaton_TableDriven(t *testing.T) {
	a := Build([]string{"foo", "bar", "baz", "ромашка"})

	tests := []struct {
		name    string
		text    string
		matched bool
	}{
		{"exact", "foo", true},
		{"contains", "xxfooyy", true},
		{"adjacent", "barbaz", true},
		{"cyrillic", "ооо ромашка и партнёры", true},
		{"partial prefix", "fo ba", false},
		{"empty text", "", false},
		{"near miss", "bax foa", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.matched, a.Contains(tc.text))
			assert.Equal(t, tc.matched, len(a.Scan(tc.text)) > 0)
		})
	}
}

func TestAutomaton_SuffixTermsReportedIndependently(t *testing.T) {
	a := Build([]string{"he", "she", "his", "hers"})
	got := a.Scan("ushers")

	var words []string
	for _, o := range got {
		words = append(words, a.Term(o.Term))
	}
	// "she" and "he" end at the same position; "hers" later.
	assert.Equal(t, []string{"she", "he", "hers"}, words)
	assert.Equal(t, Occurrence{Term: 1, Start: 1, End: 4}, got[0])
	assert.Equal(t, Occurrence{Term: 0, Start: 2, End: 4}, got[1])
	assert.Equal(t, Occurrence{Term: 3, Start: 2, End: 6}, got[2])
}

func TestAutomaton_NestedAndOverlappingTerms(t *testing.T) {
	a := Build([]string{"acme", "acme corp", "corp", "me co"})
	assert.ElementsMatch(t,
		[]string{"acme", "me co", "acme corp", "corp"},
		termsFound(a, "acme corp"))
}

func TestAutomaton_RepeatedOccurrences(t *testing.T) {
	a := Build([]string{"aa"})
	got := a.Scan("aaaa")
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 2, got[2].Start)
}

func TestAutomaton_FailureLinkDeepChain(t *testing.T) {
	// "abcd" fails over to "bcd"'s prefix "bc" at the 'x'; "bcx" must match.
	a := Build([]string{"abcd", "bcx"})
	assert.Equal(t, []string{"bcx"}, termsFound(a, "abcx"))
}

func TestAutomaton_EmptyTermsAndDuplicates(t *testing.T) {
	a := Build([]string{"", "dup", "dup"})
	got := a.Scan("a dup")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Term, "duplicate reports under its first index")

	empty := Build(nil)
	assert.False(t, empty.Contains("anything"))
	assert.Empty(t, empty.Scan("anything"))
	assert.Equal(t, 1, empty.States())

	onlyEmpty := Build([]string{""})
	assert.False(t, onlyEmpty.Contains("anything"), "empty term never matches")
}

func TestAutomaton_ByteOffsetsWithMultibyteRunes(t *testing.T) {
	a := Build([]string{"рога"})
	text := "ооо рога и копыта"
	got := a.Scan(text)
	require.Len(t, got, 1)
	assert.Equal(t, "рога", text[got[0].Start:got[0].End])
}

func TestAutomaton_InvalidUTF8DoesNotPanic(t *testing.T) {
	a := Build([]string{"ok"})
	assert.True(t, a.Contains("\xff\xfeok"))
	assert.False(t, a.Contains("\xff\xfe"))
}

func TestAutomaton_StatesShareCommonPrefixes(t *testing.T) {
	a := Build([]string{"abc", "abd"})
	// root, a, ab, abc, abd
	assert.Equal(t, 5, a.States())
}

func TestAutomaton_TermsReturnsCopy(t *testing.T) {
	a := Build([]string{"x"})
	ts := a.Terms()
	ts[0] = "y"
	assert.Equal(t, "x", a.Term(0))
}

// =============================================================================
// Agreement with brute force
// =============================================================================

func TestAutomaton_MatchesBruteForceOnRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abcя ")

	randString := func(maxLen int) string {
		n := rng.Intn(maxLen + 1)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(rs)
	}

	for round := 0; round < 300; round++ {
		terms := make([]string, 1+rng.Intn(6))
		for i := range terms {
			terms[i] = randString(4)
		}
		text := randString(30)

		a := Build(terms)
		want := bruteForce(terms, text)
		got := a.Scan(text)
		sortOccurrences(want)
		sortOccurrences(got)

		require.Equal(t, want, got, "terms=%q text=%q", terms, text)
		require.Equal(t, len(want) > 0, a.Contains(text), "terms=%q text=%q", terms, text)
	}
}

func BenchmarkContains(b *testing.B) {
	terms := make([]string, 500)
	for i := range terms {
		terms[i] = strings.Repeat(string(rune('a'+i%26)), 3+i%7) + " corp"
	}
	a := Build(terms)
	text := strings.Repeat("unrelated organisation text ", 40)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Contains(text)
	}
}

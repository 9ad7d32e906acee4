package segment

import (
	"errors"
	"os"
	"testing"

	"github.com/corey/orgscan/internal/domain/termset"
	"github.com/corey/orgscan/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReader serves documents from memory; names not in the map are missing.
type memReader map[string][]string

func (m memReader) ReadLines(name string) ([]string, error) {
	lines, ok := m[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return lines, nil
}

func segmentAll(t *testing.T, docs memReader, order ...string) Pass {
	t.Helper()
	return New(docs).Segment(order, termset.NewNormalizer())
}

// =============================================================================
// Boundary cases
// =============================================================================

func TestSegment_NoBlankLinesYieldsOneBlock(t *testing.T) {
	pass := segmentAll(t, memReader{"a": {"one", "two", "three"}}, "a")
	require.Len(t, pass.Blocks, 1)
	assert.Equal(t, []string{"one", "two", "three"}, pass.Blocks[0].Lines)
	assert.Equal(t, 1, pass.Blocks[0].Number)
}

func TestSegment_EmptyAndAllBlankDocumentsYieldNothing(t *testing.T) {
	pass := segmentAll(t, memReader{
		"empty": {},
		"blank": {"", "   ", "\t"},
	}, "empty", "blank")
	assert.Empty(t, pass.Blocks)
	assert.Equal(t, []string{"empty", "blank"}, pass.Documents)
	assert.Empty(t, pass.Warnings)
}

func TestSegment_AdjacentBlankLinesDoNotCreateEmptyBlocks(t *testing.T) {
	pass := segmentAll(t, memReader{
		"a": {"", "first", "", "", "  ", "second", "more", "", ""},
	}, "a")
	require.Len(t, pass.Blocks, 2)
	assert.Equal(t, []string{"first"}, pass.Blocks[0].Lines)
	assert.Equal(t, []string{"second", "more"}, pass.Blocks[1].Lines)
	for _, b := range pass.Blocks {
		assert.NotEmpty(t, b.Lines)
	}
}

func TestSegment_KeepsRawAndNormalizedLines(t *testing.T) {
	pass := segmentAll(t, memReader{"a": {"  ACME Corp Services ", "Partner LLC"}}, "a")
	require.Len(t, pass.Blocks, 1)
	b := pass.Blocks[0]
	assert.Equal(t, []string{"  ACME Corp Services ", "Partner LLC"}, b.Lines)
	assert.Equal(t, []string{"acme corp services", "partner llc"}, b.Normalized)
	assert.Equal(t, "a", b.Document)
}

// =============================================================================
// Global numbering
// =============================================================================

func TestSegment_NumberingContinuesAcrossDocuments(t *testing.T) {
	pass := segmentAll(t, memReader{
		"a": {"a1", "", "a2"},
		"b": {"b1", "", "", "b2", "", "b3"},
	}, "a", "b")
	require.Len(t, pass.Blocks, 5)
	want := []ports.BlockKey{
		{Document: "a", Number: 1},
		{Document: "a", Number: 2},
		{Document: "b", Number: 3},
		{Document: "b", Number: 4},
		{Document: "b", Number: 5},
	}
	for i, b := range pass.Blocks {
		assert.Equal(t, want[i], ports.BlockKey{Document: b.Document, Number: b.Number})
	}
}

func TestSegment_EveryPassRestartsAtOne(t *testing.T) {
	docs := memReader{"a": {"x", "", "y"}, "b": {"z"}}
	s := New(docs)
	first := s.Segment([]string{"a", "b"}, termset.NewNormalizer())
	second := s.Segment([]string{"a", "b"}, termset.NewNormalizer())
	assert.Equal(t, first.Blocks, second.Blocks)
	assert.Equal(t, 1, second.Blocks[0].Number)
}

func TestSegment_MissingDocumentIsWarningAndSkipped(t *testing.T) {
	pass := segmentAll(t, memReader{
		"a": {"a1"},
		"c": {"c1", "", "c2"},
	}, "a", "missing", "c")

	require.Len(t, pass.Warnings, 1)
	w := pass.Warnings[0]
	assert.Equal(t, "missing", w.Document)
	assert.True(t, errors.Is(w, ports.ErrInputUnavailable))
	assert.True(t, errors.Is(w, os.ErrNotExist))

	assert.Equal(t, []string{"a", "c"}, pass.Documents)
	require.Len(t, pass.Blocks, 3)
	assert.Equal(t, 2, pass.Blocks[1].Number, "numbering continues after a skipped document")
	assert.Equal(t, "c", pass.Blocks[1].Document)
}

func TestWalk_EmitsInOrderWithoutCollecting(t *testing.T) {
	var got []int
	pass := New(memReader{"a": {"1", "", "2", "", "3"}}).Walk([]string{"a"}, termset.NewNormalizer(), func(b ports.Block) {
		got = append(got, b.Number)
	})
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Empty(t, pass.Blocks)
}

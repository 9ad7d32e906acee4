// Package segment splits documents into blank-line-delimited blocks and gives
// each block a global number that is stable across passes over the same
// ordered document list.
package segment

import (
	"github.com/corey/orgscan/internal/domain/termset"
	"github.com/corey/orgscan/internal/ports"
)

// Pass is the full output of one segmentation pass.
type Pass struct {
	Blocks []ports.Block

	// Documents lists the documents that were read, in order.
	Documents []string

	// Warnings holds one entry per document that could not be read.
	Warnings []*ports.InputUnavailableError
}

// Segmenter reads documents through a DocumentReader and emits blocks.
// A Segmenter carries no numbering state between calls: every Walk starts
// again at block 1.
type Segmenter struct {
	reader ports.DocumentReader
}

// New returns a Segmenter reading documents through r.
func New(r ports.DocumentReader) *Segmenter {
	return &Segmenter{reader: r}
}

// Walk segments documents in the given order and calls emit for every block.
// Blocks are built with both raw and normalized lines using n. Unreadable
// documents are skipped and reported in the returned Pass (whose Blocks field
// is left empty: emit owns the blocks).
func (s *Segmenter) Walk(documents []string, n *termset.Normalizer, emit func(ports.Block)) Pass {
	var pass Pass
	counter := 0

	for _, doc := range documents {
		lines, err := s.reader.ReadLines(doc)
		if err != nil {
			pass.Warnings = append(pass.Warnings, &ports.InputUnavailableError{Document: doc, Err: err})
			continue
		}
		pass.Documents = append(pass.Documents, doc)
		counter = splitDocument(doc, lines, counter, n, emit)
	}
	return pass
}

// Segment runs Walk and collects every block into the returned Pass.
func (s *Segmenter) Segment(documents []string, n *termset.Normalizer) Pass {
	var blocks []ports.Block
	pass := s.Walk(documents, n, func(b ports.Block) {
		blocks = append(blocks, b)
	})
	pass.Blocks = blocks
	return pass
}

// splitDocument emits the blocks of one document, numbering them from
// counter+1, and returns the last number used.
func splitDocument(doc string, lines []string, counter int, n *termset.Normalizer, emit func(ports.Block)) int {
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		counter++
		emit(ports.Block{
			Document:   doc,
			Number:     counter,
			Lines:      current,
			Normalized: n.NormalizeLines(current),
		})
		current = nil
	}

	for _, line := range lines {
		if termset.IsBlank(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return counter
}

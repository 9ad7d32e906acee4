package ports

// DocumentReader loads a document as lines of text.
// The concrete implementation (internal/adapters/textfile) handles charset
// decoding and line endings; the segmenter only sees decoded lines.
type DocumentReader interface {
	// ReadLines returns every line of the named document in order, without
	// line terminators. Any error means the document is unavailable.
	ReadLines(name string) ([]string, error)
}

// ReferenceMatcher is an independent multi-pattern matcher used to cross-check
// the in-house automaton. Implementations wrap third-party Aho-Corasick
// libraries (internal/adapters/ahocorasick).
type ReferenceMatcher interface {
	// Name identifies the backing library.
	Name() string

	// Contains reports whether any pattern occurs in text. Text is matched
	// as-is (caller normalizes case).
	Contains(text string) bool

	// Matches returns the distinct patterns found in text, in first-seen
	// order.
	Matches(text string) []string
}

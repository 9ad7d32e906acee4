package ports

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrConfiguration    = errors.New("configuration error")
	ErrInputUnavailable = errors.New("input unavailable")
)

// ConfigurationError aborts a run before any matching happens: the deny-list
// is missing, a setting is invalid, or runs cannot be aggregated.
type ConfigurationError struct {
	Source string // file path or setting name
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is reports ErrConfiguration as a match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// InputUnavailableError is a recoverable per-document failure. The pass skips
// the document and carries on with the rest.
type InputUnavailableError struct {
	Document string
	Err      error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("document %q unavailable: %v", e.Document, e.Err)
}

func (e *InputUnavailableError) Unwrap() error { return e.Err }

// Is reports ErrInputUnavailable as a match.
func (e *InputUnavailableError) Is(target error) bool { return target == ErrInputUnavailable }

package sections

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSectionStructure the lyrics contain no bracketed section headers.
	ErrNoSectionStructure = errors.New("lyrics do not contain information about sections")

	// ErrTranslationFailure the translator failed or returned unusable output.
	ErrTranslationFailure = errors.New("translation failure")
)

// TranslationError carries the header label that could not be translated.
type TranslationError struct {
	Label string
	Err   error
}

func (e *TranslationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: label %q", ErrTranslationFailure, e.Label)
	}
	return fmt.Sprintf("%s: label %q: %v", ErrTranslationFailure, e.Label, e.Err)
}

func (e *TranslationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTranslationFailure}
	}
	return []error{ErrTranslationFailure, e.Err}
}

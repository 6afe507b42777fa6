package wordlist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyList is returned when a word list has no usable entries.
	ErrEmptyList = errors.New("word list is empty")

	// ErrTooFewWords is returned for lists with a single word, which carry
	// zero bits of entropy per word.
	ErrTooFewWords = errors.New("word list needs at least two distinct words")

	// ErrUnknownList is returned for an unrecognized built-in list code.
	ErrUnknownList = errors.New("unknown word list")

	// ErrInvalidUTF8 is returned when a custom list is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("word list is not valid UTF-8")

	// ErrInconsistentNormalization matches a *NormalizationWarning.
	ErrInconsistentNormalization = errors.New("word list mixes Unicode normalization forms")
)

// ReadError reports a custom list that could not be read.
type ReadError struct {
	Source string
	Err    error
}

// Error implements error.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read word list %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// NormalizationWarning is a non-fatal finding: the list uses more than one
// Unicode normalization form, so visually identical words may be stored as
// distinct entries.
type NormalizationWarning struct {
	Forms []Form
}

// Error implements error.
func (w *NormalizationWarning) Error() string {
	names := make([]string, len(w.Forms))
	for i, f := range w.Forms {
		names[i] = f.String()
	}
	return fmt.Sprintf("%v (%s); consider normalizing the list before generating passphrases",
		ErrInconsistentNormalization, strings.Join(names, ", "))
}

// Is reports whether target is ErrInconsistentNormalization.
func (w *NormalizationWarning) Is(target error) bool {
	return target == ErrInconsistentNormalization
}

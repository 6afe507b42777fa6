package wordlist

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// Validate turns raw lines into a custom word list. Every line is trimmed,
// blank lines are dropped, and the remaining words are sorted and
// deduplicated; duplicates would overstate the list's entropy.
//
// Lists mixing Unicode normalization forms are accepted, with the finding
// attached to the result (see Custom.Warning).
func Validate(lines []string) (*Custom, error) {
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(line)
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	slices.Sort(words)
	words = slices.Compact(words)

	switch len(words) {
	case 0:
		return nil, ErrEmptyList
	case 1:
		return nil, fmt.Errorf("%w: only %q remains", ErrTooFewWords, words[0])
	}
	return &Custom{
		words:   slices.Clip(words),
		warning: checkNormalization(words),
		dropped: len(lines) - len(words),
	}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read reads a UTF-8, one-word-per-line list from r and validates it.
func Read(r io.Reader) (*Custom, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	b = bytes.TrimPrefix(b, utf8BOM)
	b = bytes.TrimSuffix(b, []byte("\n"))
	if len(b) == 0 {
		return nil, ErrEmptyList
	}
	// TrimSpace in Validate removes the '\r' of CRLF endings.
	return Validate(strings.Split(string(b), "\n"))
}

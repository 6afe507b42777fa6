// Package wordlist provides the word lists passphrases are drawn from: the
// bundled lists and validated custom lists.
package wordlist

// Source is a read-only, indexable view over a word list. Implementations are
// immutable after construction and safe for concurrent use.
type Source interface {
	// Len returns the number of words.
	Len() int
	// Word returns the word at index i, 0 <= i < Len().
	Word(i int) string
}

// Builtin is one of the bundled word lists. Builtins are shared process-wide
// and must not be modified.
type Builtin struct {
	choice Choice
	words  []string
}

// Choice returns the list's identifier.
func (b *Builtin) Choice() Choice { return b.choice }

// Name returns the list's human-readable name.
func (b *Builtin) Name() string { return b.choice.Name() }

// Len implements Source.
func (b *Builtin) Len() int { return len(b.words) }

// Word implements Source.
func (b *Builtin) Word(i int) string { return b.words[i] }

// Custom is a validated, runtime-loaded word list.
type Custom struct {
	words   []string
	warning *NormalizationWarning
	dropped int
}

// Len implements Source.
func (c *Custom) Len() int { return len(c.words) }

// Word implements Source.
func (c *Custom) Word(i int) string { return c.words[i] }

// Words returns a copy of the validated words, sorted.
func (c *Custom) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Warning returns a non-nil warning when the list mixes Unicode normalization
// forms. The list is still usable.
func (c *Custom) Warning() *NormalizationWarning {
	return c.warning
}

// Dropped returns how many input lines were discarded as blank or duplicate.
func (c *Custom) Dropped() int {
	return c.dropped
}

var (
	_ Source = (*Builtin)(nil)
	_ Source = (*Custom)(nil)
)

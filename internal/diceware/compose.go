// Package diceware provides utilities for generating memorable-but-random
// strings: passphrases of words drawn uniformly from a word list.
package diceware

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sts10/phraze/internal/wordlist"
)

// NewRand returns a generator backed by a ChaCha8 CSPRNG seeded from
// crypto/rand. It's not safe for concurrent use; give each goroutine its own.
func NewRand() *rand.Rand {
	var seed [32]byte
	_, _ = crand.Read(seed[:]) // never returns an error
	return rand.New(rand.NewChaCha8(seed))
}

// Compose builds one passphrase of words words drawn from src, with a
// separator resolved from sep between each pair. Words are sampled with
// replacement, so repeats are possible.
func Compose(r *rand.Rand, src wordlist.Source, words int, sep string, titleCase bool) (string, error) {
	if src.Len() == 0 {
		return "", wordlist.ErrEmptyList
	}
	var sb strings.Builder
	for i := range words {
		if i > 0 {
			sb.WriteString(Separator(sep, r))
		}
		word := src.Word(r.IntN(src.Len()))
		if titleCase {
			word = TitleCase(word)
		}
		sb.WriteString(word)
	}
	return sb.String(), nil
}

// TitleCase lowercases word, then uppercases its first character. Casers
// carry state, so new ones are made per call.
func TitleCase(word string) string {
	word = cases.Lower(language.Und).String(word)
	first, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return cases.Upper(language.Und).String(string(first)) + word[size:]
}

// Generator produces passphrases with fixed settings. A Generator is safe for
// concurrent use as long as Source is.
type Generator struct {
	Source    wordlist.Source
	Words     int
	Separator string
	TitleCase bool
}

// NewGenerator plans the word count for strength against src. Strengths
// that fail Validate, or need more than MaxPlannedWords words, are rejected
// with ErrStrengthOutOfRange.
func NewGenerator(src wordlist.Source, strength Strength, sep string, titleCase bool) (*Generator, error) {
	if src.Len() == 0 {
		return nil, wordlist.ErrEmptyList
	}
	if err := strength.Validate(); err != nil {
		return nil, err
	}
	if src.Len() == 1 && strength.Words == 0 {
		return nil, wordlist.ErrTooFewWords
	}
	words := WordCount(strength, src.Len())
	if words > MaxPlannedWords {
		return nil, fmt.Errorf("%w: needs %d words, more than %d", ErrStrengthOutOfRange, words, MaxPlannedWords)
	}
	return &Generator{
		Source:    src,
		Words:     words,
		Separator: sep,
		TitleCase: titleCase,
	}, nil
}

// Generate produces one passphrase using r.
func (g *Generator) Generate(r *rand.Rand) (string, error) {
	return Compose(r, g.Source, g.Words, g.Separator, g.TitleCase)
}

// Entropy returns the estimated strength of each generated passphrase, in
// bits.
func (g *Generator) Entropy() float64 {
	return Entropy(g.Words, g.Source.Len())
}

// GenerateN produces n independent passphrases, in parallel. Every worker
// owns its random generator; results keep request order.
func (g *Generator) GenerateN(n int) ([]string, error) {
	if g.Source.Len() == 0 {
		return nil, wordlist.ErrEmptyList
	}
	out := make([]string, n)
	workers := min(n, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for w := range workers {
		wg.Go(func() {
			r := NewRand()
			for i := w; i < n; i += workers {
				// Source is non-empty, so Compose can't fail.
				out[i], _ = Compose(r, g.Source, g.Words, g.Separator, g.TitleCase)
			}
		})
	}
	wg.Wait()
	return out, nil
}

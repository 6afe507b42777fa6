package diceware

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultMinEntropy is the minimum strength, in bits, used when the
	// caller asks for nothing else.
	DefaultMinEntropy = 80
	// BitsPerStrengthLevel is added to DefaultMinEntropy for each strength
	// level.
	BitsPerStrengthLevel = 20
)

// Strength describes how strong a passphrase must be. Zero fields are unset.
//
// Words is authoritative when set. Otherwise the target is the larger of
// MinEntropy and the entropy implied by Level; with neither set it's
// DefaultMinEntropy.
type Strength struct {
	Words      int
	MinEntropy float64
	Level      int
}

// ErrStrengthOutOfRange is returned for a Strength that can't be planned: a
// negative field, a non-finite entropy target, or a plan longer than
// MaxPlannedWords.
var ErrStrengthOutOfRange = errors.New("strength out of range")

// MaxPlannedWords bounds the word count NewGenerator accepts.
const MaxPlannedWords = 1 << 16

// Validate reports whether s can be planned.
func (s Strength) Validate() error {
	switch {
	case s.Words < 0 || s.Level < 0:
		return fmt.Errorf("%w: negative word count or level", ErrStrengthOutOfRange)
	case math.IsNaN(s.MinEntropy) || math.IsInf(s.MinEntropy, 0) || s.MinEntropy < 0:
		return fmt.Errorf("%w: minimum entropy must be a finite positive number, got %v", ErrStrengthOutOfRange, s.MinEntropy)
	case s.Level > MaxPlannedWords:
		return fmt.Errorf("%w: level %d", ErrStrengthOutOfRange, s.Level)
	}
	return nil
}

// EffectiveMinEntropy returns the minimum entropy, in bits, that s demands.
// It ignores s.Words.
func EffectiveMinEntropy(s Strength) float64 {
	if s.Level > 0 {
		fromLevel := float64(DefaultMinEntropy + s.Level*BitsPerStrengthLevel)
		return max(fromLevel, s.MinEntropy)
	}
	if s.MinEntropy > 0 {
		return s.MinEntropy
	}
	return DefaultMinEntropy
}

// WordCount returns how many words a passphrase drawn from a list of listLen
// words needs to satisfy s.
func WordCount(s Strength, listLen int) int {
	if s.Words > 0 {
		return s.Words
	}
	return WordsForEntropy(EffectiveMinEntropy(s), listLen)
}

// WordsForEntropy returns the smallest word count whose entropy, for a list of
// listLen words, is at least minEntropy bits. It panics if listLen < 2.
//
// Non-positive and NaN targets need no words. A target whose word count
// doesn't fit in an int, including +Inf, saturates at math.MaxInt.
func WordsForEntropy(minEntropy float64, listLen int) int {
	bpw := BitsPerWord(listLen)
	if !(minEntropy > 0) {
		return 0
	}
	q := math.Ceil(minEntropy / bpw)
	if q >= math.MaxInt {
		return math.MaxInt
	}
	w := int(q)
	// The quotient can round across an integer boundary; settle on the count
	// that is minimal under the same arithmetic Entropy uses.
	for float64(w)*bpw < minEntropy {
		w++
	}
	for w > 1 && float64(w-1)*bpw >= minEntropy {
		w--
	}
	return w
}

// BitsPerWord returns log2(listLen). It panics if listLen < 2: such a list
// adds no entropy and no word count can reach a positive target.
func BitsPerWord(listLen int) float64 {
	if listLen < 2 {
		panic(fmt.Sprintf("diceware: word list of length %d has no entropy", listLen))
	}
	return math.Log2(float64(listLen))
}

// Entropy returns the strength, in bits, of a passphrase of words words drawn
// uniformly from a list of listLen words.
func Entropy(words, listLen int) float64 {
	return float64(words) * BitsPerWord(listLen)
}

// EntropySummary describes the estimated entropy in the form printed by the
// CLI's verbose mode.
func EntropySummary(words, listLen, passphrases int) string {
	subject := "Passphrase has"
	if passphrases != 1 {
		subject = "Each passphrase has"
	}
	return fmt.Sprintf("%s an estimated %.2f bits of entropy (%d words from a list of %d words)",
		subject, Entropy(words, listLen), words, listLen)
}

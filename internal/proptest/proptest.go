// Package proptest provides generators and checks for property-based tests
// of passphrase generation.
package proptest

import (
	"fmt"
	"math/rand/v2"
	"unicode"

	"pgregory.net/rapid"

	"github.com/sts10/phraze/internal/client"
	"github.com/sts10/phraze/internal/diceware"
)

// Word draws a lowercase ASCII word.
func Word() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z]{1,12}`)
}

// Line draws one raw line of a word list file: usually a word with optional
// surrounding whitespace, sometimes a blank line.
func Line() *rapid.Generator[string] {
	pad := rapid.SampledFrom([]string{"", "", " ", "\t", "  ", " \t"})
	return rapid.Custom(func(t *rapid.T) string {
		if rapid.IntRange(0, 4).Draw(t, "blank") == 0 {
			return pad.Draw(t, "whitespace")
		}
		return pad.Draw(t, "left") + Word().Draw(t, "word") + pad.Draw(t, "right")
	})
}

// Lines draws the raw lines of a word list file.
func Lines() *rapid.Generator[[]string] {
	return rapid.SliceOf(Line())
}

// ListLen draws a usable word list length.
func ListLen() *rapid.Generator[int] {
	return rapid.IntRange(2, 1<<24)
}

// MinEntropy draws a positive entropy target in bits.
func MinEntropy() *rapid.Generator[float64] {
	return rapid.Float64Range(0.01, 1024)
}

// Strength draws a strength specification in any of its modes, including the
// combination of a minimum entropy and a strength level.
func Strength() *rapid.Generator[diceware.Strength] {
	return rapid.Custom(func(t *rapid.T) diceware.Strength {
		var s diceware.Strength
		switch rapid.IntRange(0, 4).Draw(t, "mode") {
		case 0: // defaults
		case 1:
			s.Words = rapid.IntRange(1, 64).Draw(t, "words")
		case 2:
			s.MinEntropy = MinEntropy().Draw(t, "min_entropy")
		case 3:
			s.Level = rapid.IntRange(1, 10).Draw(t, "level")
		case 4:
			s.MinEntropy = MinEntropy().Draw(t, "min_entropy")
			s.Level = rapid.IntRange(1, 10).Draw(t, "level")
		}
		return s
	})
}

// Separator draws a separator: a token or a literal.
func Separator() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{
		diceware.TokenNumber, diceware.TokenSymbol, diceware.TokenEither,
		"-", ".", " ", "", "::", "_", "n", "_x",
	})
}

// CasedWord draws a word of mixed-case letters, some outside ASCII, whose
// case mappings are all single characters.
func CasedWord() *rapid.Generator[string] {
	letters := []rune("aAbBmMzZéÉöÖçÇłŁžŽñÑøØαΑωΩжЖ")
	return rapid.StringOfN(rapid.RuneFrom(letters), 1, 16, -1)
}

// GenRequests generates a batch of service requests for a number of
// concurrent clients.
func GenRequests(r *rand.Rand) [][]client.Request {
	numClients := r.IntN(4) + 2 // 2-5 clients
	perClient := r.IntN(16) + 16
	lists := []string{"", "m", "l", "e", "n", "s", "q", "a"}
	seps := []string{"-", ".", " ", "_n", "_s", "_b", ""}
	batches := make([][]client.Request, numClients)
	for i := range batches {
		batch := make([]client.Request, perClient)
		for j := range batch {
			req := client.Request{
				List:      lists[r.IntN(len(lists))],
				Separator: seps[r.IntN(len(seps))],
				TitleCase: r.IntN(2) == 0,
				Count:     r.IntN(4) + 1,
			}
			switch r.IntN(4) {
			case 0:
				req.Words = r.IntN(12) + 1
			case 1:
				req.Entropy = float64(r.IntN(160) + 1)
			case 2:
				req.Strength = r.IntN(3) + 1
			}
			batch[j] = req
		}
		batches[i] = batch
	}
	return batches
}

// CheckPassphrases verifies that got holds req.Count passphrases (one when
// unset) of words words each. Words are counted as runs of letters, so the
// count is only checked for non-empty separators that contain no letters.
func CheckPassphrases(req client.Request, words int, got []string) error {
	want := max(req.Count, 1)
	if len(got) != want {
		return fmt.Errorf("got %d passphrases, want %d", len(got), want)
	}
	if req.Separator == "" || hasLetter(req.Separator) {
		return nil
	}
	for _, p := range got {
		if n := letterRuns(p); n != words {
			return fmt.Errorf("passphrase %q has %d words, want %d", p, n, words)
		}
	}
	return nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func letterRuns(s string) int {
	var n int
	inWord := false
	for _, r := range s {
		letter := unicode.IsLetter(r)
		if letter && !inWord {
			n++
		}
		inWord = letter
	}
	return n
}

// RunRequests sends each request to c and checks the response against the
// word count the service plans for it. It stops at the first failure.
func RunRequests(c *client.Client, reqs []client.Request) error {
	for _, req := range reqs {
		words, bits, err := c.Entropy(req)
		if err != nil {
			return fmt.Errorf("entropy %+v: %w", req, err)
		}
		if want := diceware.EffectiveMinEntropy(diceware.Strength{
			MinEntropy: req.Entropy,
			Level:      req.Strength,
		}); req.Words == 0 && bits < want-0.01 {
			return fmt.Errorf("entropy %+v: %.2f bits is below the %.2f bit minimum", req, bits, want)
		}
		if req.Words > 0 && words != req.Words {
			return fmt.Errorf("entropy %+v: planned %d words, want %d", req, words, req.Words)
		}
		got, err := c.Generate(req)
		if err != nil {
			return fmt.Errorf("generate %+v: %w", req, err)
		}
		if err := CheckPassphrases(req, words, got); err != nil {
			return fmt.Errorf("generate %+v: %w", req, err)
		}
	}
	return nil
}

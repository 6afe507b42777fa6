package wordlist

import (
	"golang.org/x/text/unicode/norm"

	"github.com/sts10/phraze/internal/set"
)

// Form is a Unicode normalization form.
type Form int

const (
	NFC Form = iota + 1
	NFD
	NFKC
	NFKD
)

// checkOrder is the order in which a word is tested against each form. A word
// counts toward the first form it satisfies, so plain ASCII counts as NFC.
var checkOrder = []struct {
	form Form
	norm norm.Form
}{
	{NFC, norm.NFC},
	{NFD, norm.NFD},
	{NFKC, norm.NFKC},
	{NFKD, norm.NFKD},
}

func (f Form) String() string {
	switch f {
	case NFC:
		return "NFC"
	case NFD:
		return "NFD"
	case NFKC:
		return "NFKC"
	case NFKD:
		return "NFKD"
	default:
		return "unknown"
	}
}

// FormOf returns the first normalization form word is in. The second return
// value is false when word is in none of them, which happens when a single
// word mixes composed and decomposed sequences.
func FormOf(word string) (Form, bool) {
	for _, c := range checkOrder {
		if c.norm.IsNormalString(word) {
			return c.form, true
		}
	}
	return 0, false
}

// Forms returns the distinct normalization forms observed across words. It
// stops early once a second form is seen.
func Forms(words []string) *set.Set[Form] {
	seen := set.New[Form]()
	for _, w := range words {
		f, ok := FormOf(w)
		if !ok {
			continue
		}
		seen = seen.With(f)
		if seen.Len() > 1 {
			break
		}
	}
	return seen
}

// UniformNormalization reports whether words use exactly one normalization
// form.
func UniformNormalization(words []string) bool {
	return Forms(words).Len() == 1
}

func checkNormalization(words []string) *NormalizationWarning {
	forms := Forms(words)
	if forms.Len() <= 1 {
		return nil
	}
	return &NormalizationWarning{Forms: forms.Items()}
}

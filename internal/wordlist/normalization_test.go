package wordlist_test

import (
	"testing"

	"go.akshayshah.org/attest"
	"pgregory.net/rapid"

	"github.com/sts10/phraze/internal/proptest"
	"github.com/sts10/phraze/internal/wordlist"
)

func TestFormOf(t *testing.T) {
	tests := []struct {
		word string
		want wordlist.Form
	}{
		{"plain", wordlist.NFC},
		{"caf\u00e9", wordlist.NFC},
		{"cafe\u0301", wordlist.NFD},
		{"\ufb01ne", wordlist.NFC}, // ligature is canonical-normal but not compatibility-normal
	}
	for _, tt := range tests {
		got, ok := wordlist.FormOf(tt.word)
		attest.True(t, ok, attest.Sprintf("%q", tt.word))
		attest.Equal(t, got, tt.want, attest.Sprintf("%q", tt.word))
	}
}

func TestForms(t *testing.T) {
	attest.Zero(t, wordlist.Forms(nil).Len())
	attest.False(t, wordlist.UniformNormalization(nil))

	mixed := []string{"caf\u00e9", "cafe\u0301", "plain"}
	attest.Equal(t, wordlist.Forms(mixed).Items(), []wordlist.Form{wordlist.NFC, wordlist.NFD})
	attest.False(t, wordlist.UniformNormalization(mixed))

	attest.True(t, wordlist.UniformNormalization([]string{"caf\u00e9", "na\u00efve"}))
}

func TestASCIIIsUniform(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(proptest.Word(), 1, -1).Draw(t, "words")
		if !wordlist.UniformNormalization(words) {
			t.Fatalf("ASCII words %q reported as mixed", words)
		}
	})
}

func TestFormString(t *testing.T) {
	attest.Equal(t, wordlist.NFKD.String(), "NFKD")
	attest.Equal(t, wordlist.Form(0).String(), "unknown")
}

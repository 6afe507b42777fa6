package diceware

import (
	"math/rand/v2"
	"strconv"
)

// Separator tokens that are replaced by a random character at every
// occurrence.
const (
	TokenNumber = "_n"
	TokenSymbol = "_s"
	TokenEither = "_b"
)

// Symbols is the charset for TokenSymbol. Changing it changes the entropy a
// symbol separator contributes, so it must stay byte-for-byte stable.
const Symbols = `!@#$%&*(){}[]\:;'<>?,./_-+=`

// Separator resolves one separator occurrence. Tokens are resampled on every
// call; any other sep, including "", is returned as is.
func Separator(sep string, r *rand.Rand) string {
	switch sep {
	case TokenNumber:
		return randomDigit(r)
	case TokenSymbol:
		return randomSymbol(r)
	case TokenEither:
		if r.IntN(2) == 0 {
			return randomDigit(r)
		}
		return randomSymbol(r)
	default:
		return sep
	}
}

// IsToken reports whether sep is a randomized separator token.
func IsToken(sep string) bool {
	switch sep {
	case TokenNumber, TokenSymbol, TokenEither:
		return true
	}
	return false
}

func randomDigit(r *rand.Rand) string {
	return strconv.Itoa(r.IntN(10))
}

func randomSymbol(r *rand.Rand) string {
	i := r.IntN(len(Symbols))
	return Symbols[i : i+1]
}

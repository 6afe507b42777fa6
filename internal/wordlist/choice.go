package wordlist

import (
	"fmt"
	"strings"
)

// Choice identifies a bundled word list.
type Choice int

const (
	Long Choice = iota + 1
	Medium
	Eff
	Mnemonicode
	EffShort
	Qwerty
	Alpha
)

// Default is the list used when none is requested.
const Default = Medium

type choiceInfo struct {
	code   string
	name   string
	file   string
	length int
	note   string
}

var choices = map[Choice]choiceInfo{
	Long:        {"l", "Orchard Street Long List", "orchard-street-long.txt", 17576, ""},
	Medium:      {"m", "Orchard Street Medium List", "orchard-street-medium.txt", 8192, ""},
	Eff:         {"e", "EFF long list", "eff-long.txt", 7776, ""},
	Mnemonicode: {"n", "Mnemonicode list", "mnemonicode.txt", 1633, "good for passphrases spoken out loud"},
	EffShort:    {"s", "EFF short list", "eff-short-1.txt", 1296, ""},
	Qwerty:      {"q", "Orchard Street QWERTY list", "orchard-street-qwerty.txt", 1296, "minimizes travel on a QWERTY keyboard"},
	Alpha:       {"a", "Orchard Street Alpha list", "orchard-street-alpha.txt", 1296, "minimizes travel on an alphabetical keyboard"},
}

// Choices returns every bundled list, in display order.
func Choices() []Choice {
	return []Choice{Medium, Long, Eff, Mnemonicode, EffShort, Qwerty, Alpha}
}

// ParseChoice maps a single-letter code (case-insensitive) to a Choice.
func ParseChoice(code string) (Choice, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for c, info := range choices {
		if info.code == code {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q doesn't correspond to an available word list", ErrUnknownList, code)
}

// Code returns the single-letter code for c.
func (c Choice) Code() string { return choices[c].code }

// Name returns the human-readable list name.
func (c Choice) Name() string { return choices[c].name }

// DisplayName is Name, marked when the bundled lists are placeholders.
func (c Choice) DisplayName() string {
	if Placeholders() {
		return c.Name() + " (placeholder words)"
	}
	return c.Name()
}

// Note returns a short description of what the list is optimized for, if
// anything.
func (c Choice) Note() string { return choices[c].note }

// ExpectedLen returns the number of words the bundled list must contain.
func (c Choice) ExpectedLen() int { return choices[c].length }

// Valid reports whether c names a bundled list.
func (c Choice) Valid() bool {
	_, ok := choices[c]
	return ok
}

// String implements pflag.Value; it returns the list code.
func (c Choice) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Choice(%d)", int(c))
	}
	return c.Code()
}

// Set implements pflag.Value.
func (c *Choice) Set(code string) error {
	parsed, err := ParseChoice(code)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Type implements pflag.Value.
func (c *Choice) Type() string {
	return "list"
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Choice can be read
// from configuration.
func (c *Choice) UnmarshalText(text []byte) error {
	return c.Set(string(text))
}

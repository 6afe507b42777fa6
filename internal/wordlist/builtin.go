package wordlist

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed lists
var listFS embed.FS

// placeholderMarker is present while the bundled files are generated
// stand-ins rather than the published lists.
const placeholderMarker = "lists/PLACEHOLDER"

// Placeholders reports whether the bundled lists are stand-ins. Their lengths
// match the published lists, so entropy figures are unaffected.
func Placeholders() bool {
	_, err := fs.Stat(listFS, placeholderMarker)
	return err == nil
}

// registry holds every bundled list. It's built on first use and never
// modified afterwards. The files are validated by the package tests, so
// loading only splits lines.
var registry = sync.OnceValues(func() (map[Choice]*Builtin, error) {
	lists := make(map[Choice]*Builtin, len(choices))
	for c, info := range choices {
		b, err := listFS.ReadFile(path.Join("lists", info.file))
		if err != nil {
			return nil, fmt.Errorf("bundled list %s: %w", info.file, err)
		}
		words := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
		if len(words) != info.length {
			return nil, fmt.Errorf("bundled list %s: got %d words, want %d", info.file, len(words), info.length)
		}
		lists[c] = &Builtin{choice: c, words: words}
	}
	return lists, nil
})

// Load returns the bundled list for c.
func Load(c Choice) (*Builtin, error) {
	lists, err := registry()
	if err != nil {
		return nil, err
	}
	b, ok := lists[c]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownList, c)
	}
	return b, nil
}

// Lookup returns the bundled list for a single-letter code.
func Lookup(code string) (*Builtin, error) {
	c, err := ParseChoice(code)
	if err != nil {
		return nil, err
	}
	return Load(c)
}

// MustLoad is like Load but panics on error. The bundled lists are compiled
// into the binary, so an error is a packaging bug.
func MustLoad(c Choice) *Builtin {
	b, err := Load(c)
	if err != nil {
		panic(err)
	}
	return b
}

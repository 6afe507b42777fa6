package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"go.akshayshah.org/attest"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/diceware"
	"github.com/sts10/phraze/internal/servertest"
	"github.com/sts10/phraze/internal/ui"
	"github.com/sts10/phraze/internal/wordlist"
)

func TestGenerateDefaults(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := generateOptions{passphrases: 1, sep: "-", list: wordlist.Default}
	attest.Ok(t, generate(t.Context(), &stdout, &stderr, servertest.NewLogger(t), opts))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	attest.Equal(t, len(lines), 1)
	attest.Equal(t, len(strings.Split(lines[0], "-")), 7)
	attest.False(t, strings.HasSuffix(lines[0], "-"), attest.Sprint("no trailing separator"))
	attest.Zero(t, stderr.String())
}

func TestGenerateVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := generateOptions{
		strength:    diceware.Strength{Level: 1},
		passphrases: 3,
		sep:         "_n",
		list:        wordlist.Eff,
		titleCase:   true,
		verbose:     true,
	}
	attest.Ok(t, generate(t.Context(), &stdout, &stderr, servertest.NewLogger(t), opts))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	attest.Equal(t, len(lines), 3)
	attest.Equal(t,
		stderr.String(),
		"Each passphrase has an estimated 103.40 bits of entropy (8 words from a list of 7776 words)\n",
	)
}

func TestGenerateCustomList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	attest.Ok(t, os.WriteFile(path, []byte("caf\u00e9\ncafe\u0301\ntea\n\ntea\n"), 0o600))

	var stdout, stderr bytes.Buffer
	opts := generateOptions{
		strength:    diceware.Strength{Words: 4},
		passphrases: 2,
		sep:         " ",
		customList:  path,
		verbose:     true,
	}
	attest.Ok(t, generate(t.Context(), &stdout, &stderr, servertest.NewLogger(t), opts))
	attest.Equal(t, strings.Count(stdout.String(), "\n"), 2)
	attest.True(t, strings.Contains(stderr.String(), "normalization"), attest.Sprintf("stderr: %q", stderr.String()))
	attest.True(t, strings.Contains(stderr.String(), "from a list of 3 words"))
	attest.True(t, strings.Contains(stderr.String(), "note: removed 2 blank or duplicate lines\n"))
}

func TestGenerateErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	opts := generateOptions{passphrases: 1, customList: filepath.Join(dir, "missing.txt")}
	err := generate(t.Context(), io.Discard, io.Discard, logger, opts)
	var readErr *wordlist.ReadError
	attest.ErrorIs(t, err, fs.ErrNotExist)
	attest.True(t, errors.As(err, &readErr))

	single := filepath.Join(dir, "single.txt")
	attest.Ok(t, os.WriteFile(single, []byte("only\nonly\n"), 0o600))
	opts.customList = single
	attest.ErrorIs(t, generate(t.Context(), io.Discard, io.Discard, logger, opts), wordlist.ErrTooFewWords)
}

func TestMinimumEntropyFlag(t *testing.T) {
	cfg := config.Config{Passphrases: 1, Separator: "-", List: wordlist.Default}
	parse := func(t *testing.T, args ...string) (generateOptions, error) {
		t.Helper()
		flags := pflag.NewFlagSet("phraze", pflag.ContinueOnError)
		registerGenerateFlags(flags)
		attest.Ok(t, flags.Parse(args))
		return generateOptionsFromFlags(flags, cfg)
	}

	for _, arg := range []string{"inf", "+Inf", "-inf", "NaN", "0", "-5"} {
		_, err := parse(t, "-e", arg)
		attest.Error(t, err, attest.Sprintf("-e %s", arg))
		attest.True(t, strings.Contains(err.Error(), "--minimum-entropy"))
	}

	opts, err := parse(t, "-e", "120")
	attest.Ok(t, err)
	var stdout bytes.Buffer
	attest.Ok(t, generate(t.Context(), &stdout, io.Discard, servertest.NewLogger(t), opts))
	attest.Equal(t, len(strings.Split(strings.TrimSpace(stdout.String()), "-")), 10)

	// Finite but unreachable targets are refused before any words are drawn.
	opts, err = parse(t, "-e", "1e300")
	attest.Ok(t, err)
	err = generate(t.Context(), io.Discard, io.Discard, servertest.NewLogger(t), opts)
	attest.ErrorIs(t, err, diceware.ErrStrengthOutOfRange)
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	attest.Ok(t, os.WriteFile(path, []byte("b\na\n\na\nc\nd\n"), 0o600))

	var stdout, stderr bytes.Buffer
	attest.Ok(t, check(t.Context(), &stdout, &stderr, path, config.S3{}))
	attest.Equal(t, stdout.String(), path+": 4 words, 2.00 bits of entropy per word\n"+
		"removed 2 blank or duplicate lines\n"+
		"40 words reach 80 bits\n")
	attest.Zero(t, stderr.String())

	empty := filepath.Join(t.TempDir(), "empty.txt")
	attest.Ok(t, os.WriteFile(empty, nil, 0o600))
	attest.ErrorIs(t, check(t.Context(), &stdout, &stderr, empty, config.S3{}), wordlist.ErrEmptyList)
}

func TestPrintLists(t *testing.T) {
	var buf bytes.Buffer
	attest.Ok(t, printLists(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	attest.Equal(t, len(lines), len(wordlist.Choices())+1)
	attest.True(t, strings.HasPrefix(lines[1], "m "), attest.Sprintf("first list row: %q", lines[1]))
	attest.True(t, strings.Contains(lines[1], "(default)"))
	attest.True(t, strings.Contains(lines[1], "13.00"))
}

func TestRootCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"-w", "3", "-n", "2", "-s", ".", "-l", "A"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		ui.SetColorEnabled(false)
	})
	attest.Ok(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	attest.Equal(t, len(lines), 2)
	list := wordlist.MustLoad(wordlist.Alpha)
	for _, line := range lines {
		words := strings.Split(line, ".")
		attest.Equal(t, len(words), 3)
		for _, w := range words {
			attest.True(t, inList(list, w), attest.Sprintf("%q isn't in the alpha list", w))
		}
	}
}

func inList(src wordlist.Source, w string) bool {
	for i := range src.Len() {
		if src.Word(i) == w {
			return true
		}
	}
	return false
}

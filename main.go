package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/diceware"
	"github.com/sts10/phraze/internal/listsource"
	"github.com/sts10/phraze/internal/ui"
	"github.com/sts10/phraze/internal/wordlist"
)

var rootCmd = &cobra.Command{
	Use:   "phraze",
	Short: "Generate random passphrases",
	Long: `Generate random passphrases from a word list.

By default, each passphrase has at least 80 bits of entropy. Each -S adds 20
bits; -e sets a minimum directly, and -w sets an exact word count instead.

Separators _n, _s and _b are replaced by a random digit, symbol, or either
one, chosen anew between every pair of words.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.EnableFor(os.Stderr, orFatal(cmd.Flags().GetBool("no-color")))
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger := orFatal(newLogger(cmd.Flags(), slog.LevelWarn))
		cfg := orFatal(config.Load())
		opts := orFatal(generateOptionsFromFlags(cmd.Flags(), cfg))
		if err := generate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger, opts); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "emit logs in JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "emit debug logs")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored diagnostics")

	registerGenerateFlags(rootCmd.Flags())
	rootCmd.MarkFlagsMutuallyExclusive("strength", "minimum-entropy", "words")
	rootCmd.MarkFlagsMutuallyExclusive("list", "custom-list")
}

func registerGenerateFlags(flags *pflag.FlagSet) {
	flags.CountP("strength", "S", "add 20 bits to the minimum entropy, per use")
	flags.Float64P("minimum-entropy", "e", 0, "minimum entropy in bits (default 80)")
	flags.IntP("words", "w", 0, "exact number of words per passphrase")
	flags.IntP("passphrases", "n", 1, "number of passphrases to generate")
	flags.StringP("sep", "s", "-", "word separator; _n, _s and _b insert random digits, symbols, or both")
	list := wordlist.Default
	flags.VarP(&list, "list", "l", listUsage())
	flags.StringP("custom-list", "c", "", "read words from a file, or from s3://bucket/key")
	flags.BoolP("title-case", "t", false, "use Title Case for words")
	flags.BoolP("verbose", "v", false, "print the estimated entropy to stderr")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// generateOptions are the resolved settings for the root command.
type generateOptions struct {
	strength    diceware.Strength
	passphrases int
	sep         string
	list        wordlist.Choice
	customList  string
	titleCase   bool
	verbose     bool
	s3          config.S3
}

func generateOptionsFromFlags(flags *pflag.FlagSet, cfg config.Config) (generateOptions, error) {
	opts := generateOptions{
		strength: diceware.Strength{
			Words:      orFatal(flags.GetInt("words")),
			MinEntropy: orFatal(flags.GetFloat64("minimum-entropy")),
			Level:      orFatal(flags.GetCount("strength")),
		},
		passphrases: flagOrEnv(flags, "passphrases", cfg.Passphrases, flags.GetInt),
		sep:         flagOrEnv(flags, "sep", cfg.Separator, flags.GetString),
		list:        flagOrEnv(flags, "list", cfg.List, choiceGetter(flags)),
		customList:  orFatal(flags.GetString("custom-list")),
		titleCase:   orFatal(flags.GetBool("title-case")),
		verbose:     orFatal(flags.GetBool("verbose")),
		s3:          cfg.S3,
	}
	switch {
	case flags.Changed("words") && opts.strength.Words < 1:
		return generateOptions{}, errors.New("--words must be at least 1")
	case flags.Changed("minimum-entropy") && !validEntropy(opts.strength.MinEntropy):
		return generateOptions{}, fmt.Errorf("--minimum-entropy must be a finite positive number, got %v", opts.strength.MinEntropy)
	case opts.passphrases < 1:
		return generateOptions{}, errors.New("--passphrases must be at least 1")
	}
	return opts, nil
}

func validEntropy(bits float64) bool {
	return bits > 0 && !math.IsInf(bits, 0) && !math.IsNaN(bits)
}

// generate writes opts.passphrases passphrases to stdout, one per line.
// Diagnostics go to stderr.
func generate(ctx context.Context, stdout, stderr io.Writer, logger *slog.Logger, opts generateOptions) error {
	src, err := loadSource(ctx, stderr, logger, opts)
	if err != nil {
		return err
	}
	g, err := diceware.NewGenerator(src, opts.strength, opts.sep, opts.titleCase)
	if err != nil {
		return err
	}
	logger.Debug("planned passphrase", "words", g.Words, "list_length", src.Len(), "entropy", g.Entropy())
	passphrases, err := g.GenerateN(opts.passphrases)
	if err != nil {
		return err
	}
	if opts.verbose {
		fmt.Fprintln(stderr, ui.Style(diceware.EntropySummary(g.Words, src.Len(), opts.passphrases), ui.Dim))
	}
	for _, p := range passphrases {
		if _, err := fmt.Fprintln(stdout, p); err != nil {
			return fmt.Errorf("write passphrase: %w", err)
		}
	}
	return nil
}

// loadSource returns the custom list when one is named, and the bundled list
// otherwise. Normalization warnings are printed to stderr.
func loadSource(ctx context.Context, stderr io.Writer, logger *slog.Logger, opts generateOptions) (wordlist.Source, error) {
	if opts.customList == "" {
		return wordlist.Load(opts.list)
	}
	custom, err := listsource.Load(ctx, opts.customList, opts.s3)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded custom list", "source", opts.customList, "words", custom.Len(), "dropped_lines", custom.Dropped())
	if w := custom.Warning(); w != nil {
		fmt.Fprintln(stderr, ui.Warning(w.Error()))
	}
	if opts.verbose && custom.Dropped() > 0 {
		fmt.Fprintln(stderr, ui.Note(fmt.Sprintf("removed %d blank or duplicate lines", custom.Dropped())))
	}
	return custom, nil
}

func listUsage() string {
	usage := "word list:"
	for _, c := range wordlist.Choices() {
		usage += fmt.Sprintf("\n%s: %s (%d words)", c.Code(), c.DisplayName(), c.ExpectedLen())
		if note := c.Note(); note != "" {
			usage += ", " + note
		}
	}
	return usage
}

func newLogger(flags *pflag.FlagSet, level slog.Level) (*slog.Logger, error) {
	if orFatal(flags.GetBool("debug")) {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})
	if orFatal(flags.GetBool("json")) {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: false,
			Level:     level,
		})
	}
	return slog.New(handler), nil
}

// flagOrEnv returns the flag's value if it was set on the command line, and
// the environment's value otherwise.
func flagOrEnv[T any](flags *pflag.FlagSet, name string, env T, get func(string) (T, error)) T {
	if flags.Changed(name) {
		return orFatal(get(name))
	}
	return env
}

func choiceGetter(flags *pflag.FlagSet) func(string) (wordlist.Choice, error) {
	return func(name string) (wordlist.Choice, error) {
		f := flags.Lookup(name)
		if f == nil {
			return 0, fmt.Errorf("flag accessed but not defined: %s", name)
		}
		c, ok := f.Value.(*wordlist.Choice)
		if !ok {
			return 0, fmt.Errorf("flag %s is a %s, not a list", name, f.Value.Type())
		}
		return *c, nil
	}
}

func orFatal[T any](val T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
	return val
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sts10/phraze/internal/config"
	"github.com/sts10/phraze/internal/diceware"
	"github.com/sts10/phraze/internal/listsource"
	"github.com/sts10/phraze/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE|s3://BUCKET/KEY",
	Short: "Validate a custom word list",
	Long: `Validate a custom word list and report how much entropy it provides.

Blank lines and duplicates are removed before use; check reports how many.
Lists that mix Unicode normalization forms are usable but flagged, since
visually identical words may then be counted twice.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := orFatal(config.Load())
		if err := check(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg.S3); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(ctx context.Context, stdout, stderr io.Writer, ref string, s3 config.S3) error {
	list, err := listsource.Load(ctx, ref, s3)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d words, %.2f bits of entropy per word\n",
		ref, list.Len(), diceware.BitsPerWord(list.Len()))
	if n := list.Dropped(); n > 0 {
		fmt.Fprintf(stdout, "removed %d blank or duplicate lines\n", n)
	}
	words := diceware.WordsForEntropy(diceware.DefaultMinEntropy, list.Len())
	fmt.Fprintf(stdout, "%d words reach %d bits\n", words, diceware.DefaultMinEntropy)
	if w := list.Warning(); w != nil {
		fmt.Fprintln(stderr, ui.Warning(w.Error()))
	}
	return nil
}

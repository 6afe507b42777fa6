package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sts10/phraze/internal/diceware"
	"github.com/sts10/phraze/internal/ui"
	"github.com/sts10/phraze/internal/wordlist"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Describe the bundled word lists",
	Long:  "Describe the bundled word lists: code, name, length, and entropy per word.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printLists(cmd.OutOrStdout()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(err.Error()))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(listsCmd)
}

func printLists(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tWORDS\tBITS/WORD\tNOTE")
	for _, c := range wordlist.Choices() {
		name := c.DisplayName()
		if c == wordlist.Default {
			name += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n",
			c.Code(), name, c.ExpectedLen(), diceware.BitsPerWord(c.ExpectedLen()), c.Note())
	}
	return tw.Flush()
}

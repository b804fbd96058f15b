package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/genricoloni/courtside/internal/speech"
	"github.com/spf13/cobra"
)

func newSplitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split [file]",
		Short: "Print the sentence queue of a commentary text (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read commentary: %w", err)
			}

			sentences := speech.Split(string(data))
			out := cmd.OutOrStdout()
			if len(sentences) == 0 {
				fmt.Fprintln(out, "No sentences found.")
				return nil
			}

			rows := make([][]string, 0, len(sentences))
			for i, s := range sentences {
				rows = append(rows, []string{strconv.Itoa(i + 1), s})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Sentence"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
}

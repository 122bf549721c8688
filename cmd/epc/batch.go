package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/epoch-converter/internal/export"
	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func batchCmd() *cobra.Command {
	var file, format, output string

	cmd := &cobra.Command{
		Use:   "batch [timestamp...]",
		Short: "Convert many timestamps at once",
		Long: `Convert several timestamps. Inputs come from the arguments, from --file, or
from stdin when it is not a terminal; lines are split on newlines, commas and
semicolons. Each row succeeds or fails on its own, and successes are recorded
in history.

--format table (default) prints a summary table; csv, json and yaml export the
rows, to stdout or to --output.`,
		Example: "  epc batch 0 1640995200 nope\n  cat stamps.txt | epc batch -u ms --format csv -o out.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := batchInput(args, file)
			if err != nil {
				return err
			}
			inputs := timestamp.SplitInputs(text)
			if len(inputs) == 0 {
				return fmt.Errorf("no timestamps given")
			}

			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			e.store.ClearBatch()
			for _, in := range inputs {
				e.store.AddBatchItem(in)
			}
			res := e.store.ConvertBatch()

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			if format == "" || format == "table" {
				opts := e.renderOpts()
				if output != "" {
					opts.Color = false
				}
				_, err := io.WriteString(w, render.Batch(*res, opts))
				return err
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if err := export.Write(w, f, res.Items); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(os.Stderr, "Wrote %d rows (%d failed) to %s\n", res.Total, res.Failed, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read timestamps from a file")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table/csv/json/yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}

func batchInput(args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	case !term.IsTerminal(int(os.Stdin.Fd())):
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no timestamps given (pass arguments, --file, or pipe stdin)")
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func convertCmd() *cobra.Command {
	var asJSON, copyISO bool

	cmd := &cobra.Command{
		Use:   "convert <timestamp>",
		Short: "Convert a Unix timestamp to human-readable dates",
		Long: `Convert a Unix timestamp in the current unit (see --unit) to UTC, local,
ISO-8601 and relative renderings. The conversion is recorded in history.`,
		Example: "  epc convert 1640995200\n  epc convert -u ms 1640995200000 --copy",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			e.store.SetInput(args[0])
			if err := e.store.ConvertSingle(); err != nil {
				return explainConvertErr(args[0], e.store.State().CurrentUnit, err)
			}
			res := e.store.State().CurrentResult

			if copyISO {
				copyToClipboard(res.HumanReadable.ISO8601)
			}
			if asJSON {
				return printJSON(res)
			}
			fmt.Print(render.Result(res, e.renderOpts()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&copyISO, "copy", false, "Copy the ISO-8601 rendering to the clipboard")

	return cmd
}

func explainConvertErr(input string, unit timestamp.Unit, err error) error {
	switch {
	case errors.Is(err, app.ErrEmptyInput):
		return errors.New("empty input")
	case errors.Is(err, app.ErrInvalidInput):
		return fmt.Errorf("invalid timestamp %q for unit %s (must be between 0 and 2100-01-01)", input, unit)
	}
	return err
}

func copyToClipboard(s string) {
	if err := clipboard.WriteAll(s); err != nil {
		fmt.Fprintf(os.Stderr, "clipboard unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Copied to clipboard: %s\n", s)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func dateCmd() *cobra.Command {
	var asJSON, copyTS bool

	cmd := &cobra.Command{
		Use:   "date <date>",
		Short: "Convert a date string to a Unix timestamp",
		Long: `Parse a date (ISO-8601, YYYY-MM-DD, YYYY-MM-DD HH:mm:ss, MM/DD/YYYY, RFC 1123)
into a timestamp in the current unit. Date-only values are UTC; date-times
without an offset are read in the configured timezone.`,
		Example: "  epc date 2022-01-01\n  epc date --tz Asia/Tokyo '2024-03-01 09:30:00'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.ConvertDate(strings.Join(args, " ")); err != nil {
				return err
			}
			st := e.store.State()

			if copyTS {
				copyToClipboard(st.CurrentInput)
			}
			if asJSON {
				return printJSON(map[string]any{
					"timestamp": timestamp.ParseNumber(st.CurrentInput),
					"unit":      st.CurrentUnit,
					"result":    st.CurrentResult,
				})
			}

			fmt.Printf("%s %s\n\n", st.CurrentInput, st.CurrentUnit)
			fmt.Print(render.Result(st.CurrentResult, e.renderOpts()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&copyTS, "copy", false, "Copy the timestamp to the clipboard")

	return cmd
}

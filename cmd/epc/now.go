package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func nowCmd() *cobra.Command {
	var presets, asJSON bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current Unix timestamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			unit := e.store.State().CurrentUnit
			if !presets {
				v := e.store.CurrentTimestamp()
				if asJSON {
					return printJSON(map[string]any{"timestamp": v, "unit": unit})
				}
				fmt.Println(timestamp.FormatNumber(v))
				return nil
			}

			ps := timestamp.Presets(unit, time.Now())
			if asJSON {
				return printJSON(ps)
			}
			for _, p := range ps {
				fmt.Printf("%-10s %s\n", p.Label, timestamp.FormatNumber(p.Value))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&presets, "presets", false, "Print the Now, Yesterday and Last Week presets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/codegen"
	"github.com/Zuo-Peng/epoch-converter/internal/render"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func codeCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "code [timestamp]",
		Short: "Show code that converts a timestamp in several languages",
		Long:  `Print snippets for JavaScript, Python, PHP, Java and Go. Without a timestamp the current time is used.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			unit := e.store.State().CurrentUnit
			ts := e.store.CurrentTimestamp()
			if len(args) == 1 {
				ts = timestamp.ParseNumber(args[0])
				if math.IsNaN(ts) || math.IsInf(ts, 0) {
					return fmt.Errorf("invalid timestamp %q", args[0])
				}
			}

			var exs []codegen.Example
			if lang != "" {
				ex, err := codegen.ForLanguage(lang, ts, unit)
				if err != nil {
					return err
				}
				exs = []codegen.Example{ex}
			} else {
				exs, err = codegen.Examples(ts, unit)
				if err != nil {
					return err
				}
			}

			if lang != "" {
				fmt.Print(exs[0].Code)
				return nil
			}
			fmt.Print(render.Examples(exs, e.renderOpts()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Only this language (javascript/python/php/java/go)")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// persistent flags; when set they override both config and saved settings
var (
	flagUnit    string
	flagTZ      string
	flagNoColor bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "epc",
		Short:         "Epoch converter - convert Unix timestamps to dates and back",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagUnit, "unit", "u", "", "Timestamp unit (seconds/milliseconds/microseconds, s/ms/us)")
	rootCmd.PersistentFlags().StringVar(&flagTZ, "tz", "", "IANA timezone for local rendering (e.g. Asia/Tokyo)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colours")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(dateCmd())
	rootCmd.AddCommand(nowCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(codeCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(mcpCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

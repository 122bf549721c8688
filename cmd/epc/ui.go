package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/tui"
)

func uiCmd() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive converter",
		Long: `Open the terminal UI: live conversion as you type, batch conversion, history
and code examples. Settings and history are saved on every change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("ui needs a terminal; use convert or batch in pipes")
			}

			e, err := openEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			if tab != "" {
				if err := e.store.SetActiveTab(app.Tab(tab)); err != nil {
					return err
				}
			}

			return tui.Run(e.store, tui.Options{
				Debounce: time.Duration(e.cfg.DebounceMs) * time.Millisecond,
				Log:      e.log.Logger,
			})
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "", "Start on this tab (single/batch/code)")

	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/app"
	"github.com/Zuo-Peng/epoch-converter/internal/config"
	"github.com/Zuo-Peng/epoch-converter/internal/open"
	"github.com/Zuo-Peng/epoch-converter/internal/store"
)

func settingsCmd() *cobra.Command {
	var maxHistory int
	var relative, dark, asJSON, edit, reset bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved settings",
		Long: `Without flags, print the saved settings. --unit and --tz also change the
saved unit and timezone. --max-history is clamped to 10..100. --edit opens
the config file in $EDITOR. --reset drops the saved settings and history so
the next run starts from the config file again.`,
		Example: "  epc settings --tz Europe/Berlin --max-history 20 --relative=false",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if edit {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("home dir: %w", err)
				}
				return open.File(config.Path(home), config.Template)
			}

			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if reset {
				if err := resetSnapshot(e.db); err != nil {
					return err
				}
				fmt.Println("Saved settings and history cleared.")
				return nil
			}

			flags := cmd.Flags()
			if flags.Changed("max-history") {
				e.store.SetMaxHistoryItems(maxHistory)
			}
			if flags.Changed("relative") {
				e.store.SetShowRelativeTime(relative)
			}
			if flags.Changed("dark") && dark != e.store.State().IsDarkMode {
				e.store.ToggleDarkMode()
			}

			snap := e.store.Snapshot()
			if asJSON {
				return printJSON(settingsView(snap))
			}
			tz := snap.DefaultTimezone
			if tz == "" {
				tz = "Local"
			}
			fmt.Printf("unit:           %s\n", snap.CurrentUnit)
			fmt.Printf("timezone:       %s\n", tz)
			fmt.Printf("relative time:  %t\n", snap.ShowRelativeTime)
			fmt.Printf("max history:    %d\n", snap.MaxHistoryItems)
			fmt.Printf("dark mode:      %t\n", snap.IsDarkMode)
			fmt.Printf("history:        %d entries\n", len(snap.History))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxHistory, "max-history", app.DefaultHistoryItems, "History size (10..100)")
	cmd.Flags().BoolVar(&relative, "relative", true, "Show relative time")
	cmd.Flags().BoolVar(&dark, "dark", false, "Dark TUI palette")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().BoolVar(&edit, "edit", false, "Open the config file in $EDITOR")
	cmd.Flags().BoolVar(&reset, "reset", false, "Forget saved settings and history")

	return cmd
}

func resetSnapshot(db *store.DB) error {
	if err := db.Delete(store.SnapshotKey); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	return nil
}

func settingsView(s app.Snapshot) map[string]any {
	return map[string]any{
		"currentUnit":      s.CurrentUnit,
		"defaultTimezone":  s.DefaultTimezone,
		"showRelativeTime": s.ShowRelativeTime,
		"maxHistoryItems":  s.MaxHistoryItems,
		"isDarkMode":       s.IsDarkMode,
		"historyEntries":   len(s.History),
	}
}

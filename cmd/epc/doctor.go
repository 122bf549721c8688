package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/epoch-converter/internal/config"
	"github.com/Zuo-Peng/epoch-converter/internal/store"
	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: config, database, timezone data and clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("home dir: %w", err)
			}
			cfgPath := config.Path(home)

			fmt.Println("=== Config ===")
			fmt.Printf("  Path: %s", cfgPath)
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				fmt.Println(" (not found, using defaults)")
			} else {
				fmt.Println(" (OK)")
			}
			cfg, err := config.LoadFrom(cfgPath, home)
			if err != nil {
				fmt.Printf("  Status: INVALID (%v)\n", err)
				return nil
			}
			fmt.Printf("  Default unit: %s\n", cfg.Unit())
			fmt.Printf("  Debounce:     %d ms\n", cfg.DebounceMs)

			fmt.Println("\n=== Timezone ===")
			checkZone("Local", "")
			if cfg.DefaultTimezone != "" {
				checkZone("Configured", cfg.DefaultTimezone)
			}
			checkZone("Sample", "America/New_York")

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first conversion)")
			} else {
				checkDB(os.Stdout, cfg.DBPath)
			}

			fmt.Println("\n=== Terminal ===")
			fmt.Printf("  stdout is a terminal: %t\n", term.IsTerminal(int(os.Stdout.Fd())))
			if clipboard.Unsupported {
				fmt.Println("  Clipboard: UNSUPPORTED (install xclip, xsel or wl-clipboard)")
			} else {
				fmt.Println("  Clipboard: OK")
			}
			return nil
		},
	}
}

func checkZone(label, tz string) {
	loc, err := timestamp.LoadZone(tz)
	if err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", label, tz)
		return
	}
	name, offset := time.Now().In(loc).Zone()
	fmt.Printf("  %s: %s (%s, UTC%+03d:%02d)\n", label, loc, name, offset/3600, abs(offset%3600)/60)
}

func checkDB(w io.Writer, path string) {
	db, err := store.OpenDB(path, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(w, "  Status: ERROR (%v)\n", err)
		return
	}
	defer db.Close()

	if ver, err := db.SchemaVersion(); err == nil {
		fmt.Fprintf(w, "  Schema: v%s\n", ver)
	}
	if keys, err := db.Keys(); err == nil {
		fmt.Fprintf(w, "  Keys: %d", len(keys))
		if len(keys) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(keys, ", "))
		}
		fmt.Fprintln(w)
	}

	snap, err := db.Load()
	if err != nil {
		fmt.Fprintf(w, "  Snapshot: CORRUPT (%v)\n", err)
		return
	}
	size, _ := db.SnapshotSize()
	if snap == nil {
		fmt.Fprintln(w, "  Snapshot: none saved yet")
	} else {
		fmt.Fprintf(w, "  Snapshot: %s, %d history entries\n", humanize.Bytes(uint64(size)), len(snap.History))
	}
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  File size: %s\n", humanize.Bytes(uint64(info.Size())))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

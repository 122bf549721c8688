package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/render"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, prune and summarise past conversions",
	}
	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyRmCmd())
	cmd.AddCommand(historyClearCmd())
	cmd.AddCommand(historyStatsCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List history, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			hist := e.store.History()
			if limit > 0 && len(hist) > limit {
				hist = hist[:limit]
			}
			if asJSON {
				return printJSON(hist)
			}
			fmt.Print(render.History(hist, e.renderOpts()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries (0 = all)")

	return cmd
}

func historyRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove one entry (a unique id prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			var matches []string
			for _, h := range e.store.History() {
				if strings.HasPrefix(h.ID, args[0]) {
					matches = append(matches, h.ID)
				}
			}
			switch len(matches) {
			case 0:
				return fmt.Errorf("history entry not found: %s", args[0])
			case 1:
				e.store.RemoveFromHistory(matches[0])
				fmt.Printf("Removed %s\n", matches[0])
				return nil
			}
			return fmt.Errorf("ambiguous id %s matches %d entries", args[0], len(matches))
		},
	}
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			n := len(e.store.History())
			e.store.ClearHistory()
			fmt.Printf("Cleared %d entries\n", n)
			return nil
		},
	}
}

func historyStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show total and today's conversions and unit popularity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			stats := e.store.Stats()
			if asJSON {
				return printJSON(stats)
			}
			fmt.Print(render.Stats(stats, e.renderOpts()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

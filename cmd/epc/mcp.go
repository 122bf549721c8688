package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/epoch-converter/internal/config"
	"github.com/Zuo-Peng/epoch-converter/internal/logging"
	"github.com/Zuo-Peng/epoch-converter/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the conversion tools over MCP (stdio)",
		Long: `Run an MCP server on stdin/stdout exposing convert_timestamp, convert_batch,
date_to_timestamp, current_timestamp and code_examples. The tools are
stateless: nothing is written to history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logging.New(cfg.Log, os.Stderr)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			unit, err := resolveUnit(cfg.Unit())
			if err != nil {
				return err
			}
			tz := cfg.DefaultTimezone
			if flagTZ != "" {
				tz = flagTZ
			}

			s := mcp.NewServer(version, mcp.Options{
				DefaultUnit:     unit,
				DefaultTimezone: tz,
				Log:             log.Logger,
			})
			return s.Serve()
		},
	}
}

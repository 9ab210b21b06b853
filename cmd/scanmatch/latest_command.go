package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"scanmatch/internal/scan"
)

func newLatestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the newest record in the scan export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			source := scan.NewCSVSource(cfg.Paths.ScanCSV, logger)
			identity, err := scan.Latest(cmd.Context(), source)
			if errors.Is(err, scan.ErrNoRecords) {
				fmt.Fprintln(cmd.OutOrStdout(), "Scan export contains no records")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read latest scan: %w", err)
			}

			printIdentity(cmd.OutOrStdout(), identity)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scanmatch/internal/scan"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Write a newest-first copy of the scan export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			written, rows, err := scan.WriteSortedCopy(cfg.Paths.ScanCSV, output)
			if err != nil {
				return fmt.Errorf("write sorted copy: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", rows, written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (default <export>_sorted.csv)")
	return cmd
}

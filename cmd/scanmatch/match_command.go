package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scanmatch/internal/config"
	"scanmatch/internal/contacts"
	"scanmatch/internal/pipeline"
	"scanmatch/internal/scan"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		first string
		last  string
		dob   string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank contacts against an identity once",
		Long: "Rank contacts against the identity given by --first/--last/--dob. " +
			"Without those flags the newest record in the configured scan export is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *contacts.Store) error {
				identity := scan.Identity{
					FirstName:   first,
					LastName:    last,
					DateOfBirth: dob,
				}
				if !identity.HasCriteria() {
					source := scan.NewCSVSource(cfg.Paths.ScanCSV, logger)
					latest, err := scan.Latest(cmd.Context(), source)
					if err != nil {
						return fmt.Errorf("read latest scan: %w", err)
					}
					identity = latest
				}

				matcher := pipeline.New(store, logger, cfg.Search.PageSize)
				matches, err := matcher.RunMatch(cmd.Context(), identity)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				printIdentity(out, identity)
				printMatches(out, matches, top)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name to match")
	cmd.Flags().StringVar(&last, "last", "", "Last name to match")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth to match")
	cmd.Flags().IntVar(&top, "top", 5, "Number of ranked candidates to display")
	return cmd
}

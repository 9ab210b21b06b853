package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scanmatch/internal/config"
	"scanmatch/internal/contacts"
	"scanmatch/internal/match"
	"scanmatch/internal/textutil"
)

func newContactsCommand(ctx *commandContext) *cobra.Command {
	contactsCmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the contact directory",
	}

	contactsCmd.AddCommand(newContactsAddCommand(ctx))
	contactsCmd.AddCommand(newContactsImportCommand(ctx))
	contactsCmd.AddCommand(newContactsListCommand(ctx))

	return contactsCmd
}

func newContactsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		first string
		last  string
		dob   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			first = strings.TrimSpace(first)
			last = strings.TrimSpace(last)
			if first == "" && last == "" {
				return fmt.Errorf("at least one of --first or --last is required")
			}

			dobValue := strings.TrimSpace(dob)
			if dobValue != "" {
				if normalized, ok := textutil.NormalizeDate(dobValue); ok {
					dobValue = normalized
				}
			}

			return ctx.withStore(func(cfg *config.Config, store *contacts.Store) error {
				added, err := store.Add(cmd.Context(), match.PersonRecord{
					FirstName:   textutil.TitleCase(first),
					LastName:    textutil.TitleCase(last),
					DateOfBirth: dobValue,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", added.FirstName, added.LastName, added.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name")
	cmd.Flags().StringVar(&last, "last", "", "Last name")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth")
	return cmd
}

func newContactsImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv>",
		Short: "Import contacts from a CSV file",
		Long: "Import contacts from a CSV with a first_name,last_name,date_of_birth " +
			"header. Dates are normalized to YYYY-MM-DD when parseable.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readContactCSV(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *contacts.Store) error {
				imported, err := store.Import(cmd.Context(), records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts\n", imported)
				return nil
			})
		},
	}
	return cmd
}

func readContactCSV(path string) ([]match.PersonRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open contacts csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read contacts csv header: %w", err)
	}
	first, last, dob := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "first_name", "first name", "first":
			first = i
		case "last_name", "last name", "last":
			last = i
		case "date_of_birth", "dob":
			dob = i
		}
	}
	if first == -1 && last == -1 {
		return nil, fmt.Errorf("contacts csv has no first_name or last_name column")
	}

	cell := func(row []string, index int) string {
		if index < 0 || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	var records []match.PersonRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read contacts csv row: %w", err)
		}
		record := match.PersonRecord{
			FirstName:   textutil.TitleCase(cell(row, first)),
			LastName:    textutil.TitleCase(cell(row, last)),
			DateOfBirth: cell(row, dob),
		}
		if record.FirstName == "" && record.LastName == "" {
			continue
		}
		if normalized, ok := textutil.NormalizeDate(record.DateOfBirth); ok {
			record.DateOfBirth = normalized
		}
		records = append(records, record)
	}
	return records, nil
}

func newContactsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *contacts.Store) error {
				records, err := store.SearchAll(cmd.Context(), limit)
				if err != nil {
					return err
				}
				total, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No contacts stored")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.LastName,
						record.FirstName,
						record.DateOfBirth,
						record.ID,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"LAST NAME", "FIRST NAME", "DOB", "ID"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				if total > len(records) {
					fmt.Fprintf(out, "Showing %d of %d contacts\n", len(records), total)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum contacts to display")
	return cmd
}

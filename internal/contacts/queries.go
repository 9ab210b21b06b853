package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"scanmatch/internal/match"
)

const contactColumns = "id, first_name, last_name, date_of_birth, created_at"

// Add inserts a contact and returns the stored record. An empty ID is
// assigned a fresh UUID; a zero CreatedAt is stamped with the current time.
func (s *Store) Add(ctx context.Context, record match.PersonRecord) (match.PersonRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		record.FirstName,
		record.LastName,
		record.DateOfBirth,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return match.PersonRecord{}, fmt.Errorf("insert contact: %w", err)
	}
	return record, nil
}

// Import inserts records in one transaction and reports how many were
// written. IDs and timestamps are filled in like Add. A failed row aborts the
// whole import.
func (s *Store) Import(ctx context.Context, records []match.PersonRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ctx = ensureContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i, record := range records {
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?)`,
			record.ID,
			record.FirstName,
			record.LastName,
			record.DateOfBirth,
			record.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return 0, fmt.Errorf("import contact %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(records), nil
}

// SearchByTerm returns contacts whose field exactly equals the term or starts
// with it, case-insensitively. Results are ordered by last name, first name,
// then ID so pagination is deterministic.
func (s *Store) SearchByTerm(ctx context.Context, field match.SearchField, term string, limit int) ([]match.PersonRecord, error) {
	column, err := searchColumn(field)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search term is empty")
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+contactColumns+` FROM contacts
         WHERE `+column+` LIKE ? ESCAPE '\' COLLATE NOCASE
         ORDER BY last_name COLLATE NOCASE, first_name COLLATE NOCASE, id
         LIMIT ?`,
		escapeLike(term)+"%",
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("search contacts by %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()
	return collectContacts(rows)
}

// SearchAll returns an unfiltered page of contacts in the same deterministic
// order SearchByTerm uses.
func (s *Store) SearchAll(ctx context.Context, limit int) ([]match.PersonRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+contactColumns+` FROM contacts
         ORDER BY last_name COLLATE NOCASE, first_name COLLATE NOCASE, id
         LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("search all contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return collectContacts(rows)
}

// Count reports the number of stored contacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM contacts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func searchColumn(field match.SearchField) (string, error) {
	switch field {
	case match.FieldFirstName:
		return "first_name", nil
	case match.FieldLastName:
		return "last_name", nil
	default:
		return "", fmt.Errorf("unknown search field %q", field)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return match.DefaultPageSize
	}
	return limit
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

func collectContacts(rows *sql.Rows) ([]match.PersonRecord, error) {
	var records []match.PersonRecord
	for rows.Next() {
		var (
			record  match.PersonRecord
			created string
		)
		if err := rows.Scan(&record.ID, &record.FirstName, &record.LastName, &record.DateOfBirth, &created); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		if created != "" {
			parsed, err := time.Parse(time.RFC3339Nano, created)
			if err != nil {
				return nil, fmt.Errorf("parse contact created_at %q: %w", created, err)
			}
			record.CreatedAt = parsed
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return records, nil
}

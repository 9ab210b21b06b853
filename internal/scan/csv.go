package scan

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"scanmatch/internal/logging"
)

// createdLayout is the timestamp format the Scan-ID software writes, minus
// its trailing " (Sat May 03)" annotation.
const createdLayout = "2006/01/02 15:04:05"

// CSVSource reads scanned identity records from the Scan-ID CSV export.
type CSVSource struct {
	path   string
	logger *slog.Logger
}

// NewCSVSource builds a source over the CSV file at path.
func NewCSVSource(path string, logger *slog.Logger) *CSVSource {
	return &CSVSource{
		path:   path,
		logger: logging.NewComponentLogger(logger, "scan-source"),
	}
}

// Path returns the CSV file location.
func (s *CSVSource) Path() string { return s.path }

// Signal returns the file's modification time and size as the change token.
func (s *CSVSource) Signal() (Signal, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return Signal{}, fmt.Errorf("%w: %s", ErrSourceUnavailable, s.path)
	}
	return Signal{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Records reads and parses every row of the export. Rows that cannot be
// parsed are logged and skipped rather than aborting the read.
func (s *CSVSource) Records(ctx context.Context) ([]Identity, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, s.path)
		}
		return nil, fmt.Errorf("open scan csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read scan csv header: %w", err)
	}
	columns := mapColumns(header)

	var records []Identity
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			s.logger.Warn("skipping unreadable csv row", logging.Error(err))
			continue
		}
		identity, ok := parseRow(columns, row)
		if !ok {
			skipped++
			s.logger.Debug("skipping malformed scan record",
				logging.String("created", cell(row, columns.created)),
			)
			continue
		}
		records = append(records, identity)
	}
	if skipped > 0 {
		s.logger.Debug("scan csv read complete",
			logging.Int("records", len(records)),
			logging.Int("skipped", skipped),
		)
	}
	return records, nil
}

// Changes watches the CSV's directory for writes to the file. Watching the
// directory rather than the file survives atomic replace-on-save. The
// returned channel coalesces bursts and closes when ctx is done.
func (s *CSVSource) Changes(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("%w: watch %s: %v", ErrSourceUnavailable, dir, err)
	}

	changes := make(chan struct{}, 1)
	base := filepath.Base(s.path)
	go func() {
		defer watcher.Close()
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default: // a notification is already pending
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("file watcher error", logging.Error(err))
			}
		}
	}()
	return changes, nil
}

// columnMap holds the header index of each known column, -1 when absent.
type columnMap struct {
	created    int
	firstName  int
	lastName   int
	fullName   int
	dob        int
	age        int
	idNumber   int
	expiration int
	issued     int
	photo      int
}

var columnAliases = map[string][]string{
	"created":    {"created"},
	"firstName":  {"first name", "firstname", "first"},
	"lastName":   {"last name", "lastname", "last"},
	"fullName":   {"full name", "fullname", "name"},
	"dob":        {"dob", "date of birth", "birth date", "birthdate"},
	"age":        {"age"},
	"idNumber":   {"id no", "id number", "license no", "license", "dln"},
	"expiration": {"expires", "expiration", "exp date"},
	"issued":     {"issued", "issue date"},
	"photo":      {"photo", "image", "photo file"},
}

func mapColumns(header []string) columnMap {
	columns := columnMap{
		created: -1, firstName: -1, lastName: -1, fullName: -1, dob: -1,
		age: -1, idNumber: -1, expiration: -1, issued: -1, photo: -1,
	}
	find := func(key string) int {
		for _, alias := range columnAliases[key] {
			for i, name := range header {
				if strings.EqualFold(strings.TrimSpace(name), alias) {
					return i
				}
			}
		}
		return -1
	}
	columns.created = find("created")
	columns.firstName = find("firstName")
	columns.lastName = find("lastName")
	columns.fullName = find("fullName")
	columns.dob = find("dob")
	columns.age = find("age")
	columns.idNumber = find("idNumber")
	columns.expiration = find("expiration")
	columns.issued = find("issued")
	columns.photo = find("photo")
	// The export always leads with CREATED even when the header is odd.
	if columns.created == -1 {
		columns.created = 0
	}
	return columns
}

func parseRow(columns columnMap, row []string) (Identity, bool) {
	created := cell(row, columns.created)
	scanTime, ok := parseCreated(created)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		FirstName:    cell(row, columns.firstName),
		LastName:     cell(row, columns.lastName),
		FullName:     cell(row, columns.fullName),
		DateOfBirth:  cell(row, columns.dob),
		Age:          cell(row, columns.age),
		IDNumber:     cell(row, columns.idNumber),
		IDExpiration: cell(row, columns.expiration),
		IDIssued:     cell(row, columns.issued),
		ScanTime:     scanTime,
		PhotoRef:     cell(row, columns.photo),
	}, true
}

// parseCreated handles "2025/05/03 23:39:46 (Sat May 03)" style values; the
// parenthesized weekday annotation is decorative and dropped.
func parseCreated(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if idx := strings.Index(trimmed, " ("); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	parsed, err := time.ParseInLocation(createdLayout, trimmed, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

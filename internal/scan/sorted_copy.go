package scan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteSortedCopy writes a newest-first copy of the scan CSV next to the
// original (or to outPath when given), preserving all columns. Rows whose
// CREATED value cannot be parsed are dropped. Returns the output path and
// the number of rows written.
func WriteSortedCopy(csvPath, outPath string) (string, int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", 0, fmt.Errorf("%w: %s", ErrSourceUnavailable, csvPath)
		}
		return "", 0, fmt.Errorf("open scan csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return "", 0, fmt.Errorf("read scan csv header: %w", err)
	}

	type datedRow struct {
		row  []string
		when int64
	}
	var rows []datedRow
	createdIdx := mapColumns(header).created
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		when, ok := parseCreated(cell(row, createdIdx))
		if !ok {
			continue
		}
		rows = append(rows, datedRow{row: row, when: when.UnixNano()})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].when > rows[j].when
	})

	if outPath == "" {
		ext := filepath.Ext(csvPath)
		outPath = strings.TrimSuffix(csvPath, ext) + "_sorted" + ext
	}

	out, err := os.Create(outPath)
	if err != nil {
		return "", 0, fmt.Errorf("create sorted copy: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return "", 0, fmt.Errorf("write sorted copy: %w", err)
	}
	for _, dated := range rows {
		if err := writer.Write(dated.row); err != nil {
			return "", 0, fmt.Errorf("write sorted copy: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", 0, fmt.Errorf("flush sorted copy: %w", err)
	}
	return outPath, len(rows), nil
}

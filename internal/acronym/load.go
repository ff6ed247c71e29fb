package acronym

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the acronym table formats Load understands.
var SupportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".yaml": true,
	".yml":  true,
}

// LoadFile reads the acronym table at path and returns its ordered entries.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open acronym table: %w", err)
	}
	defer f.Close()

	return Load(f, filepath.Base(path))
}

// Load reads an acronym table in the format implied by filename.
func Load(r io.Reader, filename string) ([]Entry, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return nil, err
	}
	return Normalize(rows), nil
}

// ReadRows reads the raw rows of a table without normalizing them.
func ReadRows(r io.Reader, filename string) ([]Row, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return ReadCSV(r)
	case ".xlsx":
		return ReadXLSX(r)
	case ".yaml", ".yml":
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTable, ext)
	}
}

// rowsFromRecords maps string records onto header names. The first record
// is the header. Empty cells and cells past the end of a short record are
// missing values.
func rowsFromRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrMissingColumn)
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if err := requireColumns(headers); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) && rec[i] != "" {
				row[h] = rec[i]
			} else {
				row[h] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func requireColumns(headers []string) error {
	for _, want := range []string{ColumnAcronym, ColumnTitle} {
		found := false
		for _, h := range headers {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrMissingColumn, want)
		}
	}
	return nil
}

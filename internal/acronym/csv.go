package acronym

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads a comma-separated table whose first row is the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rowsFromRecords(records)
}

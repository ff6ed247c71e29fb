package acronym

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// ReadYAML reads a sequence of mappings, one per row:
//
//	- Acronym: ID
//	  Title: Identifier
//
// Values keep their YAML type, so numbers or nulls are filtered out later
// by Normalize.
func ReadYAML(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	headers := map[string]bool{}
	rows := make([]Row, 0, len(raw))
	for _, m := range raw {
		for k := range m {
			headers[k] = true
		}
		rows = append(rows, Row(m))
	}
	if len(rows) > 0 {
		var keys []string
		for k := range headers {
			keys = append(keys, k)
		}
		if err := requireColumns(keys); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

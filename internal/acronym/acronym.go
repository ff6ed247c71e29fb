// Package acronym loads acronym tables and turns them into the ordered
// list the annotation engine consumes.
package acronym

import (
	"errors"
	"sort"
	"unicode/utf8"
)

// Column names every acronym table must carry.
const (
	ColumnAcronym = "Acronym"
	ColumnTitle   = "Title"
)

var (
	ErrMissingColumn    = errors.New("acronym table missing required column")
	ErrUnsupportedTable = errors.New("unsupported acronym table format")
)

// Entry is one acronym and its expansion.
type Entry struct {
	Acronym string `json:"acronym"`
	Title   string `json:"title"`
}

// Row is one table row keyed by column name. A nil value is a missing
// cell; values may be of any type depending on the table format.
type Row map[string]any

// Normalize builds the ordered acronym list from raw rows.
//
// Acronyms act as mapping keys: a repeated acronym keeps the position of
// its first row and the title of its last. Rows whose acronym or title is
// not a non-empty string are dropped. The result is sorted by acronym
// length, longest first, keeping table order for equal lengths.
func Normalize(rows []Row) []Entry {
	var order []string
	titles := make(map[string]any, len(rows))
	for _, row := range rows {
		acr, ok := row[ColumnAcronym].(string)
		if !ok || acr == "" {
			continue
		}
		if _, seen := titles[acr]; !seen {
			order = append(order, acr)
		}
		titles[acr] = row[ColumnTitle]
	}

	entries := make([]Entry, 0, len(order))
	for _, acr := range order {
		title, ok := titles[acr].(string)
		if !ok || title == "" {
			continue
		}
		entries = append(entries, Entry{Acronym: acr, Title: title})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].Acronym) > utf8.RuneCountInString(entries[j].Acronym)
	})
	return entries
}

// Package annotate rewrites an HTML document so that known acronyms carry
// their expansion as an <abbr title="..."> tooltip.
//
// The passes run in a fixed order over a tree the caller owns exclusively:
//
//	StripPreamble -> NormalizeSpaces -> Annotate -> RepairLeadingSpace
//
// Process runs all four.
package annotate

import (
	"errors"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/doctree"
)

// ErrMissingAnchor is returned when the document has no <h1> to anchor
// the preamble strip on.
var ErrMissingAnchor = errors.New("document has no h1 element")

// Report summarizes one Process run.
type Report struct {
	Wrapped          map[string]int // acronym -> number of tooltips created
	SpacesNormalized int
	SpacesRepaired   int
}

// Total returns the number of tooltips created across all acronyms.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Wrapped {
		n += c
	}
	return n
}

// Process runs every pass over doc using entries, which must already be
// in longest-first order (see acronym.Normalize).
func Process(doc *doctree.Document, entries []acronym.Entry) (Report, error) {
	if err := StripPreamble(doc); err != nil {
		return Report{}, err
	}
	rep := Report{SpacesNormalized: NormalizeSpaces(doc)}
	rep.Wrapped = Annotate(doc, entries)
	rep.SpacesRepaired = RepairLeadingSpace(doc)
	return rep, nil
}

package annotate

import (
	"github.com/dgallion1/convertwi/internal/doctree"
	"golang.org/x/net/html/atom"
)

// StripPreamble removes every sibling that precedes the first <h1>.
// Only siblings go; the h1's ancestors and their earlier siblings stay.
func StripPreamble(doc *doctree.Document) error {
	h1 := doc.First(atom.H1)
	if h1 == nil {
		return ErrMissingAnchor
	}
	for n := h1.PrevSibling; n != nil; {
		prev := n.PrevSibling
		h1.Parent.RemoveChild(n)
		n = prev
	}
	return nil
}

package annotate

import (
	"strings"

	"github.com/dgallion1/convertwi/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RepairLeadingSpace moves a single leading space out of each tooltip.
// When an <abbr>'s own string starts with ' ', that one space is removed
// from inside and a " " text node is inserted just before the element.
// It returns the number of tooltips repaired.
func RepairLeadingSpace(doc *doctree.Document) int {
	repaired := 0
	for _, abbr := range doc.Elements(atom.Abbr) {
		s, ok := ownString(abbr)
		if !ok || !strings.HasPrefix(s, " ") || abbr.Parent == nil {
			continue
		}
		for c := abbr.FirstChild; c != nil; {
			next := c.NextSibling
			abbr.RemoveChild(c)
			c = next
		}
		if rest := s[1:]; rest != "" {
			abbr.AppendChild(doctree.NewText(rest))
		}
		abbr.Parent.InsertBefore(doctree.NewText(" "), abbr)
		repaired++
	}
	return repaired
}

// ownString returns the text of n when n has exactly one child, following
// single-child elements down to a text node.
func ownString(n *html.Node) (string, bool) {
	c := n.FirstChild
	if c == nil || c != n.LastChild {
		return "", false
	}
	switch c.Type {
	case html.TextNode:
		return c.Data, true
	case html.ElementNode:
		return ownString(c)
	}
	return "", false
}

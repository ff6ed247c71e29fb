package annotate

import (
	"strings"

	"github.com/dgallion1/convertwi/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// paragraphLike are the block elements whose direct text gets its
// non-breaking spaces replaced.
var paragraphLike = []atom.Atom{atom.P, atom.Li, atom.Td, atom.Blockquote}

// NormalizeSpaces replaces U+00A0 with U+0020 in the direct text children
// of paragraph-like elements. Text nodes are edited in place. It returns
// the number of text nodes changed.
func NormalizeSpaces(doc *doctree.Document) int {
	changed := 0
	doctree.Walk(doc.Root, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !isParagraphLike(n.DataAtom) {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode || !strings.ContainsRune(c.Data, '\u00a0') {
				continue
			}
			c.Data = strings.ReplaceAll(c.Data, "\u00a0", " ")
			changed++
		}
		return true
	})
	return changed
}

func isParagraphLike(a atom.Atom) bool {
	for _, p := range paragraphLike {
		if a == p {
			return true
		}
	}
	return false
}

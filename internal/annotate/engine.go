package annotate

import (
	"strings"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// replacement is one planned rewrite: target is swapped for nodes.
type replacement struct {
	target  *html.Node
	nodes   []*html.Node
	wrapped int
}

// Annotate wraps every qualifying occurrence of each entry's acronym in an
// <abbr> carrying the entry's title. Entries are applied in order, so they
// must be longest-first for longer acronyms to win over their substrings.
//
// Each entry is handled in two phases: a scan over a fresh snapshot of the
// document's text nodes builds the full plan, then the plan is applied.
// Nodes created while applying are never visited by the same entry.
func Annotate(doc *doctree.Document, entries []acronym.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		plan := scan(doc, e)
		for _, r := range plan {
			apply(r)
			counts[e.Acronym] += r.wrapped
		}
	}
	return counts
}

func scan(doc *doctree.Document, e acronym.Entry) []replacement {
	var plan []replacement
	for _, n := range doc.TextNodes() {
		if !eligible(n) || !strings.Contains(n.Data, e.Acronym) {
			continue
		}
		nodes := Split(n.Data, e)
		if nodes == nil {
			continue
		}
		wrapped := 0
		for _, c := range nodes {
			if c.Type == html.ElementNode {
				wrapped++
			}
		}
		plan = append(plan, replacement{target: n, nodes: nodes, wrapped: wrapped})
	}
	return plan
}

// eligible reports whether a text node may be annotated at all. Text
// already inside a tooltip is skipped, as is raw script/style content.
func eligible(n *html.Node) bool {
	p := n.Parent
	if p == nil {
		return false
	}
	if p.Type != html.ElementNode {
		return true
	}
	switch p.DataAtom {
	case atom.Abbr, atom.Script, atom.Style:
		return false
	}
	return true
}

func apply(r replacement) {
	parent := r.target.Parent
	for _, n := range r.nodes {
		parent.InsertBefore(n, r.target)
	}
	parent.RemoveChild(r.target)
}

// Split returns the nodes that replace text once every occurrence of
// e.Acronym is wrapped in a tooltip, or nil if the node must be left alone.
// If any occurrence is immediately followed by an ASCII capital letter the
// whole node is skipped. Otherwise occurrences are replaced left to right
// without overlap. Matching is plain substring matching with no
// word-boundary check. Empty text pieces are not emitted.
func Split(text string, e acronym.Entry) []*html.Node {
	acr := e.Acronym
	if acr == "" || hasCapitalSuffix(text, acr) {
		return nil
	}

	var out []*html.Node
	last := 0
	for {
		i := strings.Index(text[last:], acr)
		if i < 0 {
			break
		}
		start := last + i
		if start > last {
			out = append(out, doctree.NewText(text[last:start]))
		}
		out = append(out, Tooltip(e))
		last = start + len(acr)
	}
	if out == nil {
		return nil
	}
	if last < len(text) {
		out = append(out, doctree.NewText(text[last:]))
	}
	return out
}

// hasCapitalSuffix reports whether acr occurs anywhere in text, overlapping
// starts included, directly followed by A-Z.
func hasCapitalSuffix(text, acr string) bool {
	pos := 0
	for {
		i := strings.Index(text[pos:], acr)
		if i < 0 {
			return false
		}
		end := pos + i + len(acr)
		if end < len(text) && isUpperASCII(text[end]) {
			return true
		}
		pos += i + 1
	}
}

// Tooltip builds <abbr title="TITLE">ACRONYM</abbr>.
func Tooltip(e acronym.Entry) *html.Node {
	abbr := doctree.NewElement(atom.Abbr, html.Attribute{Key: "title", Val: e.Title})
	abbr.AppendChild(doctree.NewText(e.Acronym))
	return abbr
}

func isUpperASCII(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

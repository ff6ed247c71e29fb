package doctree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML document that passes mutate in place.
type Document struct {
	Root *html.Node // DocumentNode; fragments are attached directly beneath it
	full bool       // source had its own <html> scaffolding
}

// Parse reads HTML into a Document. Full documents (with a doctype or
// <html> tag) are parsed as such; anything else is parsed as a body
// fragment so rendering does not invent html/head/body wrappers.
func Parse(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	if isFullDocument(src) {
		root, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		return &Document{Root: root, full: true}, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Document{Root: root}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func isFullDocument(src []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(src))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html"))
}

// Full reports whether the document was parsed from a complete HTML page.
func (d *Document) Full() bool { return d.full }

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	for c := d.Root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf strings.Builder
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// TextNodes returns every text node in document order. The slice is a
// snapshot: later mutations of the tree do not change it.
func (d *Document) TextNodes() []*html.Node {
	var out []*html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Elements returns every element with the given tag in document order.
func (d *Document) Elements(tag atom.Atom) []*html.Node {
	var out []*html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if IsElement(n, tag) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// First returns the first element with the given tag, or nil.
func (d *Document) First(tag atom.Atom) *html.Node {
	var found *html.Node
	Walk(d.Root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if IsElement(n, tag) {
			found = n
			return false
		}
		return true
	})
	return found
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == tag
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent concatenates all text beneath n.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
		return true
	})
	return buf.String()
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// NewElement creates a detached element node.
func NewElement(tag atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag.String(), DataAtom: tag, Attr: attrs}
}

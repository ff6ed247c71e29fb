package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/annotate"
	"github.com/dgallion1/convertwi/internal/doctree"
	"github.com/dgallion1/convertwi/internal/parser"
)

// Result is the outcome of converting one document.
type Result struct {
	HTML        string         `json:"html"`
	Annotations map[string]int `json:"annotations"`
}

// Convert parses r with p, annotates it with entries and renders the
// result. entries must be in the order acronym.Normalize produces. Any
// failure aborts the whole conversion and no HTML is returned.
func Convert(ctx context.Context, p parser.Parser, r io.Reader, filename string, entries []acronym.Entry) (*Result, error) {
	doc, err := p.Parse(ctx, r, filename)
	if err != nil {
		return nil, err
	}
	return AnnotateDocument(doc, filename, entries)
}

// AnnotateDocument runs the annotation passes over an already parsed
// document and renders it.
func AnnotateDocument(doc *doctree.Document, filename string, entries []acronym.Entry) (*Result, error) {
	rep, err := annotate.Process(doc, entries)
	if err != nil {
		return nil, fmt.Errorf("annotate %s: %w", filename, err)
	}

	var buf strings.Builder
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return &Result{HTML: buf.String(), Annotations: rep.Wrapped}, nil
}

package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/dgallion1/convertwi/internal/doctree"
)

// HTMLParser handles HTML files, which need no conversion.
type HTMLParser struct{}

func (p *HTMLParser) Parse(_ context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := doctree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, nil
}

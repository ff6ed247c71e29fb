package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dgallion1/convertwi/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(_ context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("%w: render markdown %s: %v", ErrConversion, filename, err)
	}

	doc, err := doctree.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("parse rendered %s: %w", filename, err)
	}
	return doc, nil
}

package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/convertwi/internal/doctree"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file extension")
	ErrConversion        = errors.New("document conversion failed")
)

// Parser converts raw document bytes into an HTML document tree.
type Parser interface {
	Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error)
}

// DocxConverter turns the .docx file at path into HTML markup.
type DocxConverter interface {
	ToHTML(ctx context.Context, path string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// ForFile returns the appropriate parser for a filename. docx is used for
// .docx input and may be nil when only other formats are expected.
func ForFile(filename string, docx DocxConverter) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		if docx == nil {
			return nil, fmt.Errorf("%w: no docx converter configured", ErrUnsupportedFormat)
		}
		return &DOCXParser{Converter: docx}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// NewDocxConverter returns the converter backend by name: "pandoc" shells
// out to pandocPath, "native" converts in-process.
func NewDocxConverter(name, pandocPath string) (DocxConverter, error) {
	switch name {
	case "pandoc":
		return NewPandocConverter(pandocPath), nil
	case "native":
		return &NativeConverter{}, nil
	default:
		return nil, fmt.Errorf("unknown docx converter %q", name)
	}
}

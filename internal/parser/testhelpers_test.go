package parser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// makeDocx builds a minimal .docx file containing the given OOXML body
// fragment and returns its path.
func makeDocx(t *testing.T, bodyXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("makeDocx create: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("makeDocx zip entry: %v", err)
	}

	const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	doc := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document ` + ns + `><w:body>` + bodyXML + `</w:body></w:document>`

	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("makeDocx write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("makeDocx close: %v", err)
	}
	return path
}

func para(style, text string) string {
	ppr := ""
	if style != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	return `<w:p>` + ppr + `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNativeConverter_HeadingsAndParagraphs(t *testing.T) {
	path := makeDocx(t,
		para("", "Cover page")+
			para("Heading1", "Overview")+
			para("", "The ID and UUID are unique.")+
			para("heading 2", "Details")+
			para("", "   "))

	got, err := (&NativeConverter{}).ToHTML(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<p>Cover page</p>\n<h1>Overview</h1>\n<p>The ID and UUID are unique.</p>\n<h2>Details</h2>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNativeConverter_MergesRunsAndFormatting(t *testing.T) {
	body := `<w:p>` +
		`<w:r><w:t xml:space="preserve">The U</w:t></w:r>` +
		`<w:r><w:t>UID</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r>` +
		`<w:r><w:rPr><w:i/></w:rPr><w:t>it</w:t></w:r>` +
		`<w:r><w:br/><w:t>next</w:t></w:r>` +
		`</w:p>`
	got, err := (&NativeConverter{}).ToHTML(context.Background(), makeDocx(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<p>The UUID<strong>bold</strong><em>it</em><br/>next</p>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNativeConverter_ListsAndTables(t *testing.T) {
	item := func(text string) string {
		return `<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>` +
			`<w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	body := item("one") + item("two") + para("", "after") +
		`<w:tbl><w:tr><w:tc>` + para("", "ID") + `</w:tc><w:tc>` + para("", "a") + para("", "b") + `</w:tc></w:tr></w:tbl>`

	got, err := (&NativeConverter{}).ToHTML(context.Background(), makeDocx(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"<ul><li>one</li><li>two</li></ul>",
		"<p>after</p>",
		"<table><tbody><tr><td>ID</td><td><p>a</p><p>b</p></td></tr></tbody></table>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q\ngot: %s", want, got)
		}
	}
}

func TestNativeConverter_EmptyDocument(t *testing.T) {
	_, err := (&NativeConverter{}).ToHTML(context.Background(), makeDocx(t, ""))
	if !errors.Is(err, ErrConversion) {
		t.Errorf("expected ErrConversion, got %v", err)
	}
}

func TestNativeConverter_NotADocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := (&NativeConverter{}).ToHTML(context.Background(), path)
	if !errors.Is(err, ErrConversion) {
		t.Errorf("expected ErrConversion, got %v", err)
	}
}

func TestDOCXParser_Native(t *testing.T) {
	data, err := os.ReadFile(makeDocx(t, para("Heading1", "Title")+para("", "Body text")))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	p := &DOCXParser{Converter: &NativeConverter{}}
	doc, err := p.Parse(context.Background(), strings.NewReader(string(data)), "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := doc.String(), "<h1>Title</h1>\n<p>Body text</p>\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

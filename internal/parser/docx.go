package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/convertwi/internal/doctree"
	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOCXParser handles .docx files by handing a temp copy to a converter.
type DOCXParser struct {
	Converter DocxConverter
}

func (p *DOCXParser) Parse(ctx context.Context, r io.Reader, filename string) (*doctree.Document, error) {
	// Converters work on a path, so spool the upload to a temp file that
	// lives only as long as this call.
	tmp, err := os.CreateTemp("", "convertwi-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	markup, err := p.Converter.ToHTML(ctx, tmpPath)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", filename, err)
	}
	doc, err := doctree.ParseString(markup)
	if err != nil {
		return nil, fmt.Errorf("parse converted %s: %w", filename, err)
	}
	return doc, nil
}

// NativeConverter converts .docx to HTML in-process with go-docx. It covers
// headings, paragraphs, bold/italic runs, line breaks, list paragraphs and
// tables, which is what acronym annotation needs.
type NativeConverter struct{}

func (c *NativeConverter) ToHTML(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat docx: %w", err)
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", ErrConversion, err)
	}

	root := &html.Node{Type: html.DocumentNode}
	var list *html.Node
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if isListParagraph(it) {
				if list == nil {
					list = doctree.NewElement(atom.Ul)
					root.AppendChild(list)
				}
				if li := renderParagraph(it, atom.Li); li != nil {
					list.AppendChild(li)
				}
				continue
			}
			list = nil
			tag := atom.P
			if level := docxHeadingLevel(it); level > 0 {
				tag = headingAtoms[level-1]
			}
			if n := renderParagraph(it, tag); n != nil {
				root.AppendChild(n)
			}
		case *docx.Table:
			list = nil
			root.AppendChild(renderTable(it))
		}
	}

	var buf strings.Builder
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("%w: document has no content", ErrConversion)
	}
	return buf.String(), nil
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func isListParagraph(para *docx.Paragraph) bool {
	return para.Properties != nil && para.Properties.NumProperties != nil
}

// segment is a run of identically formatted inline content.
type segment struct {
	text         string
	bold, italic bool
	lineBreak    bool
}

// renderParagraph returns tag filled with the paragraph's inline content,
// or nil when the paragraph is empty. Adjacent runs with the same
// formatting are merged so words split across runs stay in one text node.
func renderParagraph(para *docx.Paragraph, tag atom.Atom) *html.Node {
	var segs []segment
	add := func(s segment) {
		if n := len(segs); n > 0 && !s.lineBreak && !segs[n-1].lineBreak &&
			segs[n-1].bold == s.bold && segs[n-1].italic == s.italic {
			segs[n-1].text += s.text
			return
		}
		segs = append(segs, s)
	}
	addRun := func(run *docx.Run) {
		var bold, italic bool
		if rp := run.RunProperties; rp != nil {
			bold, italic = rp.Bold != nil, rp.Italic != nil
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				add(segment{text: t.Text, bold: bold, italic: italic})
			case *docx.Tab:
				add(segment{text: "\t", bold: bold, italic: italic})
			case *docx.BarterRabbet:
				add(segment{lineBreak: true})
			}
		}
	}
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			addRun(c)
		case *docx.Hyperlink:
			addRun(&c.Run)
		}
	}

	hasText := false
	for _, s := range segs {
		if strings.TrimSpace(s.text) != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		return nil
	}

	n := doctree.NewElement(tag)
	for _, s := range segs {
		if s.lineBreak {
			n.AppendChild(doctree.NewElement(atom.Br))
			continue
		}
		target := n
		if s.bold {
			strong := doctree.NewElement(atom.Strong)
			target.AppendChild(strong)
			target = strong
		}
		if s.italic {
			em := doctree.NewElement(atom.Em)
			target.AppendChild(em)
			target = em
		}
		target.AppendChild(doctree.NewText(s.text))
	}
	return n
}

func renderTable(tbl *docx.Table) *html.Node {
	table := doctree.NewElement(atom.Table)
	tbody := doctree.NewElement(atom.Tbody)
	table.AppendChild(tbody)
	for _, row := range tbl.TableRows {
		tr := doctree.NewElement(atom.Tr)
		for _, cell := range row.TableCells {
			td := doctree.NewElement(atom.Td)
			for _, para := range cell.Paragraphs {
				p := renderParagraph(para, atom.P)
				if p == nil {
					continue
				}
				if len(cell.Paragraphs) == 1 {
					// Single-paragraph cells hold their text directly.
					for c := p.FirstChild; c != nil; {
						next := c.NextSibling
						p.RemoveChild(c)
						td.AppendChild(c)
						c = next
					}
					continue
				}
				td.AppendChild(p)
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return table
}

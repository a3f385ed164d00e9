package extractor

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/segment"
)

// Markdown extracts .md files using goldmark. Headings open chapters;
// a file without headings goes through the segmenter.
type Markdown struct{}

func (m *Markdown) Extract(path string) (*document.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(src))

	name := stem(path)

	var chapters []document.Chapter
	var currentTitle string
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n\n"))
		if content == "" && currentTitle == "" {
			body = nil
			return
		}
		title := currentTitle
		if title == "" {
			title = fmt.Sprintf("Section %d", len(chapters)+1)
		}
		if content == "" {
			content = title
		}
		chapters = append(chapters, document.Chapter{
			Title:   title,
			Content: content,
			Index:   len(chapters),
		})
		body = nil
	}

	sawHeading := false
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			flush()
			currentTitle = string(h.Text(src))
			sawHeading = true
			continue
		}
		if t := blockText(n, src); t != "" {
			body = append(body, t)
		}
	}
	flush()

	if !sawHeading {
		var all []string
		for _, ch := range chapters {
			all = append(all, ch.Content)
		}
		chapters = segment.Split(strings.Join(all, "\n\n"), name)
	}

	return &document.Document{
		Metadata: document.Metadata{
			Title:  name,
			Author: "Unknown",
			Format: document.FormatMarkdown,
		},
		Chapters: chapters,
	}, nil
}

// blockText gets the text content of a goldmark AST node. Block nodes
// with source lines read the raw segments; container nodes (lists,
// quotes) recurse.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		for i := 0; i < n.Lines().Len(); i++ {
			seg := n.Lines().At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}

	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}

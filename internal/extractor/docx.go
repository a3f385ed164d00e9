package extractor

import (
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/segment"
)

// DOCX extracts word-processor documents. Heading-styled paragraphs
// open chapters; body paragraphs accumulate under the current one.
type DOCX struct{}

func (d *DOCX) Extract(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	doc, err := docx.Parse(f, st.Size())
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatDOCX, Path: path, Err: err}
	}

	name := stem(path)

	var chapters []document.Chapter
	var currentTitle string
	var body []string
	var allText []string

	flush := func(fallback string) {
		if len(body) == 0 {
			return
		}
		title := currentTitle
		if title == "" {
			title = fallback
		}
		chapters = append(chapters, document.Chapter{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(body, "\n")),
			Index:   len(chapters),
		})
		body = nil
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		allText = append(allText, text)

		if isHeadingStyle(para) {
			flush(fmt.Sprintf("Section %d", len(chapters)+1))
			currentTitle = text
			continue
		}
		body = append(body, text)
	}
	flush(name)

	if len(chapters) == 0 {
		chapters = segment.Split(strings.Join(allText, "\n"), name)
	}

	return &document.Document{
		Metadata: document.Metadata{
			Title:  name,
			Author: "Unknown",
			Format: document.FormatDOCX,
		},
		Chapters: chapters,
	}, nil
}

// isHeadingStyle reports whether a paragraph uses a Heading style.
func isHeadingStyle(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(para.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

// paragraphText concatenates the run text of a paragraph.
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

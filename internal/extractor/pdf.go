package extractor

import (
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/segment"
)

// PDF extracts page text through ledongthuc/pdf. PDFs carry no
// chapter structure the library exposes, so the concatenated page
// text goes through the heading segmenter.
type PDF struct{}

func (p *PDF) Extract(path string) (*document.Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatPDF, Path: path, Err: err}
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	title, author := pdfInfo(reader, stem(path))

	return &document.Document{
		Metadata: document.Metadata{
			Title:  title,
			Author: author,
			Format: document.FormatPDF,
		},
		Chapters: segment.Split(buf.String(), title),
	}, nil
}

// pdfInfo reads title and author from the Info dictionary, falling
// back to the filename stem and "Unknown".
func pdfInfo(reader *pdflib.Reader, fallbackTitle string) (title, author string) {
	title = fallbackTitle
	author = "Unknown"

	info := reader.Trailer().Key("Info")
	if t := strings.TrimSpace(info.Key("Title").Text()); t != "" {
		title = t
	}
	if a := strings.TrimSpace(info.Key("Author").Text()); a != "" {
		author = a
	}
	return title, author
}

// Package extractor turns files into documents: title/author metadata
// plus ordered chapters. Each supported container format has its own
// extractor variant; unknown extensions fall back to plain text.
package extractor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quietread/quietread/internal/document"
)

// Extractor converts one file into a document.
type Extractor interface {
	Extract(path string) (*document.Document, error)
}

// ExtractionError reports a container the underlying decoder could not
// open or parse. Callers may fall back to plain-text handling.
type ExtractionError struct {
	Format document.Format
	Path   string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s %q: %v", e.Format, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// PlaceholderContent fills the single chapter of a document nothing
// usable could be extracted from.
const PlaceholderContent = "Unable to extract content."

// ForPath returns the extractor for a filename. Unmapped extensions
// get the plain-text fallback.
func ForPath(path string) Extractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return &Markdown{}
	case ".html", ".htm":
		return &HTML{}
	case ".pdf":
		return &PDF{}
	case ".epub":
		return &EPUB{}
	case ".docx":
		return &DOCX{}
	default:
		return &Text{}
	}
}

// Load extracts a document from path. Structured-container failures
// degrade to plain-text extraction; a missing or unreadable file is
// fatal. The result always has at least one chapter.
func Load(path string) (*document.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fingerprint, err := document.Fingerprint(abs)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", abs, err)
	}

	doc, err := ForPath(abs).Extract(abs)
	if err != nil {
		var xerr *ExtractionError
		if !errors.As(err, &xerr) {
			return nil, err
		}
		// Corrupt container: treat the bytes as text rather than
		// refusing the load outright.
		doc, err = (&Text{}).Extract(abs)
		if err != nil {
			return nil, err
		}
	}

	if !hasContent(doc.Chapters) {
		doc.Chapters = []document.Chapter{{
			Title:   doc.Metadata.Title,
			Content: PlaceholderContent,
			Index:   0,
		}}
	}

	doc.Metadata.Fingerprint = fingerprint
	doc.Metadata.Path = abs
	return doc, nil
}

func hasContent(chapters []document.Chapter) bool {
	for _, ch := range chapters {
		if strings.TrimSpace(ch.Content) != "" {
			return true
		}
	}
	return false
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

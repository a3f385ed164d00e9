package extractor

import (
	"fmt"
	"os"
	"strings"

	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/segment"
)

// Text is the plain-text extractor and the fallback for unmapped
// extensions and unreadable containers. Invalid UTF-8 is replaced,
// never propagated as an error.
type Text struct{}

func (t *Text) Extract(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	text := strings.ToValidUTF8(string(data), "�")
	name := stem(path)

	return &document.Document{
		Metadata: document.Metadata{
			Title:  name,
			Author: "Unknown",
			Format: document.FormatText,
		},
		Chapters: segment.Split(text, name),
	}, nil
}

package document

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Format identifies the container a document was loaded from.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatEPUB     Format = "epub"
	FormatDOCX     Format = "docx"
)

// Metadata describes a loaded document.
type Metadata struct {
	Title       string // Document title (from container metadata or filename)
	Author      string // "Unknown" when the container carries no author
	Format      Format
	Fingerprint string // Truncated content digest, stable bookmark key
	Path        string // Absolute source path
}

// Chapter is one logical reading unit. Content is raw extracted text,
// not yet reflowed.
type Chapter struct {
	Title   string
	Content string
	Index   int // Position in the owning document, 0-based
}

// Document is the root of a loaded file: metadata plus chapters in
// reading order. Chapters is non-empty for any successful load.
type Document struct {
	Metadata Metadata
	Chapters []Chapter
}

// fingerprintLen is the hex length of the truncated digest.
const fingerprintLen = 8

// Fingerprint digests the full file contents and returns the first
// 8 hex characters. Identical bytes always produce the same value.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen], nil
}

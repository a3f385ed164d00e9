package extractor

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quietread/quietread/internal/document"
)

const testContainerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const testOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Voyage Out</dc:title>
    <dc:creator>V. Author</dc:creator>
  </metadata>
  <manifest>
    <item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="stub" href="stub.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine toc="ncx">
    <itemref idref="ch1"/>
    <itemref idref="stub"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

const testNCX = `<?xml version="1.0"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="p1"><navLabel><text>The Departure</text></navLabel>
      <content src="ch1.xhtml"/></navPoint>
    <navPoint id="p2"><navLabel><text>The Storm</text></navLabel>
      <content src="ch2.xhtml#start"/></navPoint>
  </navMap>
</ncx>`

func writeEPUB(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestEPUBExtractor_SpineAndNCXTitles(t *testing.T) {
	path := writeEPUB(t, map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/toc.ncx":          testNCX,
		"OEBPS/ch1.xhtml":        `<html><body><p>The ship left harbor at dawn with little ceremony.</p></body></html>`,
		"OEBPS/ch2.xhtml":        `<html><body><p>Clouds gathered.</p><p>Then the rain came down in sheets.</p></body></html>`,
		"OEBPS/stub.xhtml":       `<html><body><p>tiny</p></body></html>`,
	})

	doc, err := (&EPUB{}).Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "Voyage Out" {
		t.Errorf("expected OPF title, got %q", doc.Metadata.Title)
	}
	if doc.Metadata.Author != "V. Author" {
		t.Errorf("expected OPF creator, got %q", doc.Metadata.Author)
	}
	if doc.Metadata.Format != document.FormatEPUB {
		t.Errorf("expected epub format, got %q", doc.Metadata.Format)
	}

	// stub.xhtml is below the content threshold and dropped.
	if len(doc.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
	}
	if doc.Chapters[0].Title != "The Departure" || doc.Chapters[1].Title != "The Storm" {
		t.Errorf("unexpected titles: %q, %q", doc.Chapters[0].Title, doc.Chapters[1].Title)
	}
	if !strings.Contains(doc.Chapters[0].Content, "left harbor at dawn") {
		t.Errorf("chapter 0 content: %q", doc.Chapters[0].Content)
	}
	if !strings.Contains(doc.Chapters[1].Content, "Clouds gathered.\n\n") {
		t.Errorf("expected paragraph break preserved: %q", doc.Chapters[1].Content)
	}
	for i, ch := range doc.Chapters {
		if ch.Index != i {
			t.Errorf("chapter %d has index %d", i, ch.Index)
		}
	}
}

func TestEPUBExtractor_EPUB3NavTitles(t *testing.T) {
	opf := strings.Replace(testOPF,
		`<item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>`,
		`<item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>`, 1)
	opf = strings.Replace(opf, `<spine toc="ncx">`, `<spine>`, 1)

	path := writeEPUB(t, map[string]string{
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      opf,
		"OEBPS/nav.xhtml": `<html><body><nav epub:type="toc"><ol>
			<li><a href="ch1.xhtml">First Light</a></li>
			<li><a href="ch2.xhtml">Second Wind</a></li>
		</ol></nav></body></html>`,
		"OEBPS/ch1.xhtml":  `<html><body><p>Enough prose to pass the length filter easily.</p></body></html>`,
		"OEBPS/ch2.xhtml":  `<html><body><p>Another chapter with a reasonable amount of text.</p></body></html>`,
		"OEBPS/stub.xhtml": `<html><body><p>tiny</p></body></html>`,
	})

	doc, err := (&EPUB{}).Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
	}
	if doc.Chapters[0].Title != "First Light" || doc.Chapters[1].Title != "Second Wind" {
		t.Errorf("unexpected titles: %q, %q", doc.Chapters[0].Title, doc.Chapters[1].Title)
	}
}

func TestEPUBExtractor_SynthesizedTitles(t *testing.T) {
	opf := strings.Replace(testOPF,
		`<item id="ncx" href="toc.ncx" media-type="application/x-dtbncx+xml"/>`, "", 1)
	opf = strings.Replace(opf, `<spine toc="ncx">`, `<spine>`, 1)

	path := writeEPUB(t, map[string]string{
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      opf,
		"OEBPS/ch1.xhtml":        `<html><body><p>Enough prose to pass the length filter easily.</p></body></html>`,
		"OEBPS/ch2.xhtml":        `<html><body><p>Another chapter with a reasonable amount of text.</p></body></html>`,
		"OEBPS/stub.xhtml":       `<html><body><p>tiny</p></body></html>`,
	})

	doc, err := (&EPUB{}).Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
	}
	if doc.Chapters[0].Title != "Chapter 1" || doc.Chapters[1].Title != "Chapter 2" {
		t.Errorf("unexpected titles: %q, %q", doc.Chapters[0].Title, doc.Chapters[1].Title)
	}
}

func TestEPUBExtractor_NotAZip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.epub", "this is not a zip archive")

	_, err := (&EPUB{}).Extract(path)
	if err == nil {
		t.Fatal("expected error")
	}
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("expected ExtractionError, got %T", err)
	}
	if xerr.Format != document.FormatEPUB {
		t.Errorf("expected epub format in error, got %q", xerr.Format)
	}
}

func TestEPUBExtractor_MissingContainer(t *testing.T) {
	path := writeEPUB(t, map[string]string{"mimetype": "application/epub+zip"})

	_, err := (&EPUB{}).Extract(path)
	if err == nil {
		t.Fatal("expected error for archive without container.xml")
	}
}

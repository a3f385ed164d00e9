package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/quietread/quietread/internal/document"
)

// EPUB extracts ebook containers: container.xml locates the package
// document, the spine fixes reading order, and each spine item becomes
// one chapter. Titles come from the NCX or EPUB 3 nav document when
// one maps the item's file.
type EPUB struct{}

// minChapterLen filters spine items that are styling shells rather
// than content.
const minChapterLen = 20

var errNoRootfile = errors.New("no rootfile in container.xml")

func (e *EPUB) Extract(filePath string) (*document.Document, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatEPUB, Path: filePath, Err: err}
	}
	defer zr.Close()

	opfPath, err := containerRootfile(&zr.Reader)
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatEPUB, Path: filePath, Err: err}
	}

	pkg, err := parsePackage(&zr.Reader, opfPath)
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatEPUB, Path: filePath, Err: err}
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}

	title := stem(filePath)
	if len(pkg.Metadata.Title) > 0 && strings.TrimSpace(pkg.Metadata.Title[0].Content) != "" {
		title = strings.TrimSpace(pkg.Metadata.Title[0].Content)
	}
	author := "Unknown"
	if len(pkg.Metadata.Creator) > 0 && strings.TrimSpace(pkg.Metadata.Creator[0].Content) != "" {
		author = strings.TrimSpace(pkg.Metadata.Creator[0].Content)
	}

	manifest := make(map[string]opfItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		manifest[item.ID] = item
	}

	tocTitles := navTitles(&zr.Reader, pkg, baseDir)

	var chapters []document.Chapter
	for _, ref := range pkg.Spine.ItemRefs {
		item, ok := manifest[ref.IDRef]
		if !ok {
			continue
		}
		data, err := readZipFile(&zr.Reader, resolveHref(baseDir, item.Href))
		if err != nil {
			continue
		}
		plain := strings.TrimSpace(xhtmlText(data))
		if len(plain) <= minChapterLen {
			continue
		}

		chTitle, ok := tocTitles[item.Href]
		if !ok {
			chTitle = fmt.Sprintf("Chapter %d", len(chapters)+1)
		}
		chapters = append(chapters, document.Chapter{
			Title:   chTitle,
			Content: plain,
			Index:   len(chapters),
		})
	}

	return &document.Document{
		Metadata: document.Metadata{
			Title:  title,
			Author: author,
			Format: document.FormatEPUB,
		},
		Chapters: chapters,
	}, nil
}

// containerXML is META-INF/container.xml, which points at the OPF.
type containerXML struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

func containerRootfile(zr *zip.Reader) (string, error) {
	data, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", err
	}
	var c containerXML
	if err := xml.Unmarshal(data, &c); err != nil {
		return "", err
	}
	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" && rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}
	if len(c.Rootfiles.Rootfile) > 0 && c.Rootfiles.Rootfile[0].FullPath != "" {
		return c.Rootfiles.Rootfile[0].FullPath, nil
	}
	return "", errNoRootfile
}

// opfPackage is the package document: Dublin Core metadata, the file
// manifest, and the spine (reading order).
type opfPackage struct {
	Metadata struct {
		Title   []dcElement `xml:"title"`
		Creator []dcElement `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []opfItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		Toc      string `xml:"toc,attr"`
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type dcElement struct {
	Content string `xml:",chardata"`
}

type opfItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

func parsePackage(zr *zip.Reader, opfPath string) (*opfPackage, error) {
	data, err := readZipFile(zr, opfPath)
	if err != nil {
		return nil, err
	}
	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, errors.New("file not in archive: " + name)
}

func resolveHref(baseDir, href string) string {
	href, _, _ = strings.Cut(href, "#")
	if baseDir == "" {
		return href
	}
	return path.Join(baseDir, href)
}

// blockTags end with a paragraph break when converting XHTML to text.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// xhtmlText flattens an XHTML chapter body to plain text, keeping
// paragraph breaks.
func xhtmlText(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return flattenHTML(doc)
}

// flattenHTML walks a parsed HTML tree appending text content, with
// block elements closing paragraphs.
func flattenHTML(root *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				buf.WriteString("\n")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch {
			case blockTags[n.Data]:
				buf.WriteString("\n\n")
			case n.Data == "td" || n.Data == "th":
				buf.WriteString("\t")
			}
		}
	}
	walk(root)
	return buf.String()
}

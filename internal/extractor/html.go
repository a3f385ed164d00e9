package extractor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/segment"
)

// HTML extracts standalone HTML files: h1-h6 open chapters, content
// elements accumulate, chrome elements are skipped.
type HTML struct{}

func (h *HTML) Extract(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, &ExtractionError{Format: document.FormatHTML, Path: path, Err: err}
	}

	title := stem(path)
	if t := findTitle(root); t != "" {
		title = t
	}

	var chapters []document.Chapter
	var currentTitle string
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n\n"))
		if content == "" {
			body = nil
			return
		}
		chTitle := currentTitle
		if chTitle == "" {
			chTitle = fmt.Sprintf("Section %d", len(chapters)+1)
		}
		chapters = append(chapters, document.Chapter{
			Title:   chTitle,
			Content: content,
			Index:   len(chapters),
		})
		body = nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if headingLevel(n.Data) > 0 {
				flush()
				currentTitle = strings.TrimSpace(nodeText(n))
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				if t := strings.TrimSpace(nodeText(n)); t != "" {
					body = append(body, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if b := findBody(root); b != nil {
		walk(b)
	} else {
		walk(root)
	}
	flush()

	if len(chapters) == 0 {
		chapters = segment.Split(strings.TrimSpace(flattenHTML(root)), title)
	}

	return &document.Document{
		Metadata: document.Metadata{
			Title:  title,
			Author: "Unknown",
			Format: document.FormatHTML,
		},
		Chapters: chapters,
	}, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return strings.TrimSpace(nodeText(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

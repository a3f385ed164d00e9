package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html"
)

// navTitles builds a map from manifest href (anchor stripped) to the
// chapter title the book's navigation gives it. EPUB 3 nav documents
// are preferred, then the EPUB 2 NCX; books with neither get an empty
// map and synthesized titles.
func navTitles(zr *zip.Reader, pkg *opfPackage, baseDir string) map[string]string {
	if item, ok := findNavItem(pkg); ok {
		data, err := readZipFile(zr, resolveHref(baseDir, item.Href))
		if err == nil {
			if titles := parseNavDoc(data, item.Href); len(titles) > 0 {
				return titles
			}
		}
	}

	if item, ok := findNCXItem(pkg); ok {
		data, err := readZipFile(zr, resolveHref(baseDir, item.Href))
		if err == nil {
			if titles := parseNCX(data); len(titles) > 0 {
				return titles
			}
		}
	}

	return map[string]string{}
}

func findNavItem(pkg *opfPackage) (opfItem, bool) {
	for _, item := range pkg.Manifest.Items {
		for _, prop := range strings.Fields(item.Properties) {
			if prop == "nav" {
				return item, true
			}
		}
	}
	return opfItem{}, false
}

func findNCXItem(pkg *opfPackage) (opfItem, bool) {
	for _, item := range pkg.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			return item, true
		}
	}
	if pkg.Spine.Toc != "" {
		for _, item := range pkg.Manifest.Items {
			if item.ID == pkg.Spine.Toc {
				return item, true
			}
		}
	}
	return opfItem{}, false
}

// ncxDocument is the EPUB 2 navigation file.
type ncxDocument struct {
	NavMap struct {
		NavPoints []ncxNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
}

type ncxNavPoint struct {
	Label   string `xml:"navLabel>text"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

func parseNCX(data []byte) map[string]string {
	var ncx ncxDocument
	if err := xml.Unmarshal(data, &ncx); err != nil {
		return nil
	}
	titles := map[string]string{}
	var collect func(points []ncxNavPoint)
	collect = func(points []ncxNavPoint) {
		for _, p := range points {
			href, _, _ := strings.Cut(p.Content.Src, "#")
			label := strings.TrimSpace(p.Label)
			if href != "" && label != "" {
				if _, ok := titles[href]; !ok {
					titles[href] = label
				}
			}
			collect(p.Children)
		}
	}
	collect(ncx.NavMap.NavPoints)
	return titles
}

// parseNavDoc walks an EPUB 3 nav document for the toc nav's anchors.
// Hrefs in the nav are relative to the nav document itself, so they
// are rebased to the OPF directory like spine hrefs.
func parseNavDoc(data []byte, navHref string) map[string]string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	nav := findTocNav(doc)
	if nav == nil {
		return nil
	}

	navDir := ""
	if i := strings.LastIndex(navHref, "/"); i >= 0 {
		navDir = navHref[:i]
	}

	titles := map[string]string{}
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href, _, _ := strings.Cut(attrValue(n, "href"), "#")
			label := strings.TrimSpace(nodeText(n))
			if href != "" && label != "" {
				key := href
				if navDir != "" {
					key = navDir + "/" + href
				}
				if _, ok := titles[key]; !ok {
					titles[key] = label
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(nav)
	return titles
}

// findTocNav locates <nav epub:type="toc">, or any <nav> when no node
// is typed.
func findTocNav(n *html.Node) *html.Node {
	var anyNav *html.Node
	var find func(n *html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "nav" {
			if anyNav == nil {
				anyNav = n
			}
			for _, a := range n.Attr {
				if strings.HasSuffix(a.Key, "type") && a.Val == "toc" {
					return n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	if found := find(n); found != nil {
		return found
	}
	return anyNav
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

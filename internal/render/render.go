// Package render owns the reflowed line buffer: the display-width
// view of a document that pagination and the disguise modes consume.
// Buffers are immutable; a width change builds a new one.
package render

import (
	"fmt"
	"strings"

	"github.com/quietread/quietread/internal/disguise"
	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/reflow"
)

// Mode selects how a rendered page is presented.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeCode   Mode = "code"
	ModeLog    Mode = "log"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNormal, ModeCode, ModeLog:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown display mode %q (want normal, code or log)", s)
}

// chapterSeparator is inserted between chapters in the line buffer.
var chapterSeparator = []string{"", "───", ""}

// Renderer holds a document reflowed to one display width.
type Renderer struct {
	doc           *document.Document
	width         int
	linesPerPage  int
	lines         []string
	chapterStarts []int
}

// New reflows every chapter of doc to width and indexes chapter start
// offsets. linesPerPage controls pagination; values below 1 are
// clamped to 1.
func New(doc *document.Document, width, linesPerPage int) *Renderer {
	if linesPerPage < 1 {
		linesPerPage = 1
	}

	r := &Renderer{
		doc:          doc,
		width:        width,
		linesPerPage: linesPerPage,
	}

	for i, ch := range doc.Chapters {
		r.chapterStarts = append(r.chapterStarts, len(r.lines))
		reflowed := reflow.Reflow(ch.Content, width)
		r.lines = append(r.lines, strings.Split(reflowed, "\n")...)
		if i < len(doc.Chapters)-1 {
			r.lines = append(r.lines, chapterSeparator...)
		}
	}

	return r
}

// Rewrap builds a fresh buffer at a new width. The receiver is left
// untouched.
func (r *Renderer) Rewrap(width int) *Renderer {
	return New(r.doc, width, r.linesPerPage)
}

// Lines returns the full reflowed line buffer.
func (r *Renderer) Lines() []string { return r.lines }

// LineCount returns the number of reflowed lines.
func (r *Renderer) LineCount() int { return len(r.lines) }

// Width returns the display width the buffer was built for.
func (r *Renderer) Width() int { return r.width }

// LinesPerPage returns the pagination unit.
func (r *Renderer) LinesPerPage() int { return r.linesPerPage }

// PageCount returns the number of pages the buffer spans.
func (r *Renderer) PageCount() int {
	if len(r.lines) == 0 {
		return 1
	}
	return (len(r.lines) + r.linesPerPage - 1) / r.linesPerPage
}

// ChapterStart returns the line offset where chapter i begins.
func (r *Renderer) ChapterStart(i int) int {
	if i < 0 || i >= len(r.chapterStarts) {
		return 0
	}
	return r.chapterStarts[i]
}

// ChapterAt returns the index of the chapter containing a line offset.
func (r *Renderer) ChapterAt(line int) int {
	idx := 0
	for i, start := range r.chapterStarts {
		if line >= start {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// Page renders page n in the given mode. Out-of-range pages render as
// empty text rather than failing.
func (r *Renderer) Page(n int, mode Mode) string {
	if n < 0 || n*r.linesPerPage >= len(r.lines) {
		return ""
	}

	start := n * r.linesPerPage
	end := min(start+r.linesPerPage, len(r.lines))
	chunk := strings.Join(r.lines[start:end], "\n")

	switch mode {
	case ModeCode:
		return disguise.AsCode(chunk, n)
	case ModeLog:
		return disguise.AsLog(chunk, n)
	default:
		return chunk
	}
}

// Render produces the whole document in the given mode, page by page,
// so disguised output stays reproducible per page index.
func (r *Renderer) Render(mode Mode) string {
	if mode == ModeNormal {
		return strings.Join(r.lines, "\n")
	}
	var pages []string
	for n := 0; n < r.PageCount(); n++ {
		pages = append(pages, r.Page(n, mode))
	}
	return strings.Join(pages, "\n")
}

// Package segment partitions flat text into ordered, titled chapters.
// It is the path used when a container format carries no structure of
// its own: heading lines first, size-based packing as a fallback.
package segment

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/quietread/quietread/internal/document"
)

// Tuning thresholds for the heading heuristic and the fallback packer.
const (
	// MinHeadingCount headings must be found before the heading path
	// is trusted; fewer is treated as coincidence.
	MinHeadingCount = 2
	// MinPrefaceLen is the minimum length of text before the first
	// heading for it to be kept as a "Preface" chapter.
	MinPrefaceLen = 50
	// MinFallbackLen is the total length below which text is not worth
	// splitting and becomes a single chapter.
	MinFallbackLen = 6000
	// MaxSectionLen caps the size of a packed fallback section.
	MaxSectionLen = 3000
)

// Split partitions text into chapters. It cannot fail: absence of
// structure degrades to size-based sections and finally to a single
// chapter titled fallbackTitle.
func Split(text, fallbackTitle string) []document.Chapter {
	lines := strings.Split(text, "\n")

	type headingStart struct {
		line  int
		title string
	}
	var starts []headingStart
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			starts = append(starts, headingStart{line: i, title: trimmed})
		}
	}

	if len(starts) >= MinHeadingCount {
		var chapters []document.Chapter
		for idx, start := range starts {
			end := len(lines)
			if idx+1 < len(starts) {
				end = starts[idx+1].line
			}
			content := strings.TrimSpace(strings.Join(lines[start.line:end], "\n"))
			if content == "" {
				continue
			}
			chapters = append(chapters, document.Chapter{
				Title:   start.title,
				Content: content,
				Index:   len(chapters),
			})
		}

		// Text before the first heading becomes a preface when it is
		// long enough to be content rather than front-matter noise.
		if starts[0].line > 0 {
			preface := strings.TrimSpace(strings.Join(lines[:starts[0].line], "\n"))
			if len(preface) > MinPrefaceLen {
				chapters = append([]document.Chapter{{Title: "Preface", Content: preface}}, chapters...)
				for i := range chapters {
					chapters[i].Index = i
				}
			}
		}
		return chapters
	}

	if len(text) > MinFallbackLen {
		return packSections(text)
	}

	return []document.Chapter{{Title: fallbackTitle, Content: text, Index: 0}}
}

// packSections accumulates blank-line-separated paragraphs into
// sections of at most MaxSectionLen characters.
func packSections(text string) []document.Chapter {
	var chapters []document.Chapter
	var current strings.Builder

	flush := func() {
		content := strings.TrimSpace(current.String())
		if content != "" {
			chapters = append(chapters, document.Chapter{
				Title:   fmt.Sprintf("Section %d", len(chapters)+1),
				Content: content,
				Index:   len(chapters),
			})
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		if current.Len()+len(para) > MaxSectionLen && current.Len() > 0 {
			flush()
			current.WriteString(para)
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chapters
}

// isHeading reports whether a trimmed line looks like a chapter
// heading: a "chapter" or "part" keyword, a number, and optionally a
// punctuation-separated trailing title. Explicit scan rather than a
// regexp so each rule stays independently testable.
func isHeading(line string) bool {
	rest, ok := trimKeyword(line)
	if !ok {
		return false
	}

	// Mandatory whitespace between keyword and number.
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == rest || trimmed == "" {
		return false
	}

	num, rest := splitNumber(trimmed)
	if num == "" {
		return false
	}
	if rest == "" {
		return true
	}

	// A trailing title must be introduced by punctuation or space;
	// "Chapter 10th" is not a heading.
	return strings.IndexFunc(rest, func(r rune) bool {
		return !strings.ContainsRune(".:)?-", r) && !unicode.IsSpace(r)
	}) != 0
}

func trimKeyword(line string) (string, bool) {
	for _, kw := range []string{"chapter", "part"} {
		if len(line) >= len(kw) && strings.EqualFold(line[:len(kw)], kw) {
			return line[len(kw):], true
		}
	}
	return "", false
}

// splitNumber consumes an arabic number or a roman numeral prefix.
func splitNumber(s string) (num, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 {
		return s[:i], s[i:]
	}
	for i < len(s) && strings.ContainsRune("IVXLCivxlc", rune(s[i])) {
		i++
	}
	return s[:i], s[i:]
}

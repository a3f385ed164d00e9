package reflow

import (
	"strings"
)

// Markers whose lines pass through wrapping untouched, so list items,
// quotes and headings keep their shape even when long.
var preservedPrefixes = []string{"- ", "* ", "> ", "#"}

// Wrap breaks each line of text to at most width characters, breaking
// greedily at the last space before the boundary. A token with no
// space before the boundary is hard-broken with a trailing hyphen; at
// width 1 the hyphen is dropped and runes are emitted one per line.
// width <= 0 returns the text unchanged.
func Wrap(text string, width int) string {
	if text == "" || width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if isPreserved(line) || len([]rune(line)) <= width {
			out = append(out, line)
			continue
		}

		remaining := []rune(line)
		for len(remaining) > width {
			brk := lastSpaceBefore(remaining, width)
			switch {
			case brk > 0:
				out = append(out, string(remaining[:brk]))
				remaining = remaining[brk+1:]
			case width > 1:
				out = append(out, string(remaining[:width-1])+"-")
				remaining = remaining[width-1:]
			default:
				// Width 1 leaves no room for a hyphen; emit one rune
				// per line so the loop always makes progress.
				out = append(out, string(remaining[:1]))
				remaining = remaining[1:]
			}
		}
		if len(remaining) > 0 {
			out = append(out, string(remaining))
		}
	}

	return strings.Join(out, "\n")
}

// Reflow normalizes raw text and wraps each paragraph independently,
// rejoining paragraphs with a blank line.
func Reflow(raw string, width int) string {
	cleaned := Normalize(raw)

	var wrapped []string
	for _, para := range strings.Split(cleaned, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		wrapped = append(wrapped, Wrap(para, width))
	}
	return strings.Join(wrapped, "\n\n")
}

func isPreserved(line string) bool {
	for _, prefix := range preservedPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// lastSpaceBefore finds the rightmost space in line[:limit], or -1.
func lastSpaceBefore(line []rune, limit int) int {
	for i := limit - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

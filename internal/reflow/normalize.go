// Package reflow cleans up extracted text and wraps it to a display
// width. All transforms are pure: same input, same output, no failure
// modes.
package reflow

import (
	"strings"
)

// Normalize repairs common extraction artifacts in order: line-ending
// canonicalization, standalone page-number removal, hyphen-break
// rejoining, soft-wrap rejoining, blank-run collapsing, and whitespace
// collapsing. Normalizing already-normalized text is a no-op.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Lines are trimmed up front so the join passes below see their
	// final shape; this is what makes Normalize idempotent.
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	// Standalone page numbers become blank lines; the blank-run
	// collapse below absorbs them the same way a real gap would be.
	for i, line := range lines {
		if isPageNumber(line) {
			lines[i] = ""
		}
	}

	lines = joinHyphenBreaks(lines)
	lines = joinSoftWraps(lines)
	lines = collapseBlankRuns(lines)

	for i, line := range lines {
		lines[i] = collapseSpaces(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// isPageNumber reports whether a trimmed line is 1-4 digits and
// nothing else.
func isPageNumber(line string) bool {
	if len(line) == 0 || len(line) > 4 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return true
}

// joinHyphenBreaks merges "jum-" + "ped" into "jumped". Only a
// lowercase continuation counts; "UTF-" + "8" stays split.
func joinHyphenBreaks(lines []string) []string {
	var out []string
	for _, line := range lines {
		n := len(out)
		if n > 0 && strings.HasSuffix(out[n-1], "-") && startsLower(line) {
			out[n-1] = strings.TrimSuffix(out[n-1], "-") + line
			continue
		}
		out = append(out, line)
	}
	return out
}

// joinSoftWraps merges a line with no terminal punctuation into a
// lowercase continuation line. This intentionally misjoins short
// unpunctuated paragraph breaks (dialogue lines); the heuristic has
// no way to tell them apart from a mid-sentence wrap.
func joinSoftWraps(lines []string) []string {
	var out []string
	for _, line := range lines {
		n := len(out)
		if n > 0 && endsSoft(out[n-1]) && startsLower(line) {
			out[n-1] += " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

func endsSoft(line string) bool {
	if line == "" {
		return false
	}
	c := line[len(line)-1]
	return c == ',' || c == ';' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func startsLower(line string) bool {
	return line != "" && line[0] >= 'a' && line[0] <= 'z'
}

// collapseBlankRuns reduces runs of blank lines to a single blank
// line (the paragraph separator).
func collapseBlankRuns(lines []string) []string {
	var out []string
	blank := false
	for _, line := range lines {
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return out
}

// collapseSpaces reduces runs of two or more spaces/tabs to a single
// space. A lone tab is left alone.
func collapseSpaces(line string) string {
	if !strings.ContainsAny(line, " \t") {
		return line
	}
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); {
		c := line[i]
		if c != ' ' && c != '\t' {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if j-i >= 2 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(c)
		}
		i = j
	}
	return b.String()
}

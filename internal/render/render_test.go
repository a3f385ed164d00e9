package render

import (
	"strings"
	"testing"

	"github.com/quietread/quietread/internal/document"
)

func twoChapterDoc() *document.Document {
	return &document.Document{
		Metadata: document.Metadata{Title: "test", Author: "Unknown", Format: document.FormatText},
		Chapters: []document.Chapter{
			{Title: "One", Content: "Alpha line one.\n\nAlpha line two.", Index: 0},
			{Title: "Two", Content: "Beta line one.", Index: 1},
		},
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"normal", "code", "log"} {
		m, err := ParseMode(valid)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", valid, err)
		}
		if string(m) != valid {
			t.Errorf("ParseMode(%q) = %q", valid, m)
		}
	}
	if _, err := ParseMode("matrix"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNew_ChapterStartsAndSeparator(t *testing.T) {
	r := New(twoChapterDoc(), 80, 10)

	if r.ChapterStart(0) != 0 {
		t.Errorf("chapter 0 start = %d", r.ChapterStart(0))
	}
	lines := r.Lines()
	start1 := r.ChapterStart(1)
	if lines[start1] != "Beta line one." {
		t.Errorf("chapter 1 does not start at its offset: %q", lines[start1])
	}

	// Separator sits between the chapters.
	sep := false
	for _, l := range lines[:start1] {
		if l == "───" {
			sep = true
		}
	}
	if !sep {
		t.Error("expected separator between chapters")
	}
}

func TestChapterAt(t *testing.T) {
	r := New(twoChapterDoc(), 80, 10)

	if got := r.ChapterAt(0); got != 0 {
		t.Errorf("ChapterAt(0) = %d", got)
	}
	if got := r.ChapterAt(r.ChapterStart(1)); got != 1 {
		t.Errorf("ChapterAt(start of chapter 1) = %d", got)
	}
	if got := r.ChapterAt(r.ChapterStart(1) - 1); got != 0 {
		t.Errorf("ChapterAt(line before chapter 1) = %d", got)
	}
	if got := r.ChapterAt(10_000); got != 1 {
		t.Errorf("ChapterAt past the end = %d", got)
	}
}

func TestPageSlicing(t *testing.T) {
	r := New(twoChapterDoc(), 80, 2)

	var rebuilt []string
	for n := 0; n < r.PageCount(); n++ {
		page := r.Page(n, ModeNormal)
		rebuilt = append(rebuilt, strings.Split(page, "\n")...)
	}
	if got, want := strings.Join(rebuilt, "\n"), strings.Join(r.Lines(), "\n"); got != want {
		t.Errorf("pages do not reassemble the buffer:\n%q\n%q", got, want)
	}
}

func TestPageOutOfRange(t *testing.T) {
	r := New(twoChapterDoc(), 80, 10)
	if got := r.Page(-1, ModeNormal); got != "" {
		t.Errorf("negative page = %q", got)
	}
	if got := r.Page(99, ModeNormal); got != "" {
		t.Errorf("page past end = %q", got)
	}
}

func TestPageCount(t *testing.T) {
	r := New(twoChapterDoc(), 80, 3)
	want := (r.LineCount() + 2) / 3
	if r.PageCount() != want {
		t.Errorf("PageCount() = %d, want %d", r.PageCount(), want)
	}

	empty := New(&document.Document{}, 80, 10)
	if empty.PageCount() != 1 {
		t.Errorf("empty document PageCount() = %d", empty.PageCount())
	}
}

func TestRewrapLeavesReceiverUntouched(t *testing.T) {
	doc := &document.Document{
		Chapters: []document.Chapter{{
			Title:   "Long",
			Content: strings.Repeat("word ", 50),
		}},
	}
	wide := New(doc, 200, 10)
	wideCount := wide.LineCount()

	narrow := wide.Rewrap(20)
	if narrow.Width() != 20 {
		t.Errorf("narrow width = %d", narrow.Width())
	}
	if narrow.LineCount() <= wideCount {
		t.Errorf("narrow buffer should have more lines: %d vs %d", narrow.LineCount(), wideCount)
	}
	if wide.LineCount() != wideCount || wide.Width() != 200 {
		t.Error("rewrap mutated the original buffer")
	}

	for _, l := range narrow.Lines() {
		if len(l) > 20 {
			t.Errorf("line exceeds width: %q", l)
		}
	}
}

func TestPageModeDispatch(t *testing.T) {
	r := New(twoChapterDoc(), 80, 10)

	normal := r.Page(0, ModeNormal)
	code := r.Page(0, ModeCode)
	log := r.Page(0, ModeLog)

	if code == normal || log == normal || code == log {
		t.Error("modes should produce distinct output")
	}
	if !strings.Contains(code, "Alpha line one.") {
		t.Errorf("code mode lost the text: %q", code)
	}
	if !strings.Contains(log, "Alpha line one.") {
		t.Errorf("log mode lost the text: %q", log)
	}
	if code != r.Page(0, ModeCode) {
		t.Error("code mode not deterministic")
	}
}

func TestRenderWholeDocument(t *testing.T) {
	r := New(twoChapterDoc(), 80, 2)

	if got := r.Render(ModeNormal); got != strings.Join(r.Lines(), "\n") {
		t.Errorf("normal render mismatch: %q", got)
	}

	logOut := r.Render(ModeLog)
	if !strings.Contains(logOut, "Beta line one.") {
		t.Errorf("log render lost chapter text: %q", logOut)
	}
}

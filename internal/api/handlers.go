package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quietread/quietread/internal/reflow"
	"github.com/quietread/quietread/internal/render"
)

// handleDocument returns document metadata and the chapter listing.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	type chapterInfo struct {
		Index     int    `json:"index"`
		Title     string `json:"title"`
		StartLine int    `json:"start_line"`
	}

	chapters := make([]chapterInfo, 0, len(s.doc.Chapters))
	for _, ch := range s.doc.Chapters {
		chapters = append(chapters, chapterInfo{
			Index:     ch.Index,
			Title:     ch.Title,
			StartLine: s.renderer.ChapterStart(ch.Index),
		})
	}

	writeJSON(w, map[string]any{
		"title":       s.doc.Metadata.Title,
		"author":      s.doc.Metadata.Author,
		"format":      s.doc.Metadata.Format,
		"fingerprint": s.doc.Metadata.Fingerprint,
		"path":        s.doc.Metadata.Path,
		"pages":       s.renderer.PageCount(),
		"lines":       s.renderer.LineCount(),
		"width":       s.renderer.Width(),
		"chapters":    chapters,
	})
}

// handleChapter returns one chapter's reflowed text.
func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= len(s.doc.Chapters) {
		jsonError(w, "chapter index out of range", http.StatusNotFound)
		return
	}

	ch := s.doc.Chapters[idx]
	writeJSON(w, map[string]any{
		"index": ch.Index,
		"title": ch.Title,
		"text":  reflow.Reflow(ch.Content, s.renderer.Width()),
	})
}

// handlePage returns one rendered page; ?mode= selects the display
// mode, defaulting to normal.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || n < 0 || n >= s.renderer.PageCount() {
		jsonError(w, "page out of range", http.StatusNotFound)
		return
	}

	mode := render.ModeNormal
	if m := r.URL.Query().Get("mode"); m != "" {
		mode, err = render.ParseMode(m)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, map[string]any{
		"page":  n,
		"pages": s.renderer.PageCount(),
		"mode":  mode,
		"text":  s.renderer.Page(n, mode),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

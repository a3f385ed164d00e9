package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quietread/quietread/internal/bookmark"
	"github.com/quietread/quietread/internal/config"
	"github.com/quietread/quietread/internal/document"
	"github.com/quietread/quietread/internal/extractor"
	"github.com/quietread/quietread/internal/render"
)

// terminalMargin keeps wrapped lines clear of the right edge when the
// width is auto-detected.
const terminalMargin = 4

var rootCmd = &cobra.Command{
	Use:   "quietread <file>",
	Short: "Read documents in your terminal, looking like you're working",
	Long: `quietread ingests a document (PDF, EPUB, DOCX, Markdown, HTML or plain
text), splits it into chapters, reflows it to your terminal width, and
prints it in one of three display modes:

  normal  the reflowed text itself
  code    a synthetic source-code listing carrying the text in comments
          and string literals
  log     a synthetic server-log stream carrying the text line by line

Disguised output is deterministic per page, so the same page always
renders the same way.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.Flags().StringP("mode", "m", "normal", "display mode: normal, code, or log")
	rootCmd.Flags().BoolP("resume", "r", false, "resume from the last saved reading position")
	rootCmd.Flags().Int("width", 0, "wrap column (0 = detect from terminal)")
	rootCmd.Flags().Int("page", -1, "render a single page (default: all pages)")
	rootCmd.Flags().Bool("save-position", false, "save the rendered position as a bookmark")
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	doc, renderer, err := loadDocument(cmd, args[0], cfg)
	if err != nil {
		return err
	}

	modeName, _ := cmd.Flags().GetString("mode")
	mode, err := render.ParseMode(modeName)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	startLine := 0
	resume, _ := cmd.Flags().GetBool("resume")
	if resume {
		if bm, ok := store.Get(doc.Metadata.Fingerprint); ok {
			startLine = bm.ScrollLine
			if saved, err := render.ParseMode(bm.Mode); err == nil {
				mode = saved
			}
		}
	}

	page, _ := cmd.Flags().GetInt("page")
	if page < 0 {
		page = startLine / renderer.LinesPerPage()
	} else {
		startLine = page * renderer.LinesPerPage()
	}

	single := cmd.Flags().Changed("page")
	out := cmd.OutOrStdout()
	if single {
		fmt.Fprintln(out, renderer.Page(page, mode))
	} else {
		for n := page; n < renderer.PageCount(); n++ {
			fmt.Fprintln(out, renderer.Page(n, mode))
		}
	}

	if save, _ := cmd.Flags().GetBool("save-position"); save {
		err := store.Put(doc.Metadata.Fingerprint, bookmark.Bookmark{
			Chapter:    renderer.ChapterAt(startLine),
			ScrollLine: startLine,
			Mode:       string(mode),
			FileName:   filepath.Base(doc.Metadata.Path),
			FilePath:   doc.Metadata.Path,
		})
		if err != nil {
			return fmt.Errorf("save bookmark: %w", err)
		}
	}

	return nil
}

// loadDocument runs the extraction pipeline and builds the renderer.
// Shared by the read, serve and info commands.
func loadDocument(cmd *cobra.Command, path string, cfg config.Config) (*document.Document, *render.Renderer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("file not found: %s", path)
	}

	doc, err := extractor.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if len(doc.Chapters) == 1 && doc.Chapters[0].Content == extractor.PlaceholderContent {
		return nil, nil, errors.New("unable to extract readable content from " + path)
	}

	width := cfg.Width
	if f := cmd.Flags().Lookup("width"); f != nil && f.Changed {
		width, _ = cmd.Flags().GetInt("width")
	}
	if width <= 0 {
		width = detectWidth()
	}

	return doc, render.New(doc, width, cfg.LinesPerPage), nil
}

// detectWidth reads the terminal size, falling back to 80 columns
// when stdout is a pipe.
func detectWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > terminalMargin {
		return w - terminalMargin
	}
	return 80
}

func openStore(cfg config.Config) (*bookmark.Store, error) {
	if cfg.BookmarkDir != "" {
		return bookmark.NewStore(cfg.BookmarkDir), nil
	}
	return bookmark.DefaultStore()
}

package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Display
	Width        int // Wrap column, 0 means detect from the terminal
	LinesPerPage int

	// Bookmarks
	BookmarkDir string // Empty means ~/.quietread

	// Preview server
	HTTPAddr string
	APIKey   string // Empty disables auth on the preview server
}

func Load() Config {
	cfg := Config{
		Width:        envInt("QUIETREAD_WIDTH", 80),
		LinesPerPage: envInt("QUIETREAD_PAGE_LINES", 40),
		BookmarkDir:  os.Getenv("QUIETREAD_BOOKMARK_DIR"),
		HTTPAddr:     envOr("QUIETREAD_HTTP_ADDR", ":8099"),
		APIKey:       os.Getenv("QUIETREAD_API_KEY"),
	}

	if cfg.Width < 0 {
		cfg.Width = 80
	}
	if cfg.LinesPerPage <= 0 {
		cfg.LinesPerPage = 40
	}

	return cfg
}

func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("QUIETREAD_HTTP_ADDR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietread/quietread/internal/api"
	"github.com/quietread/quietread/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve a document's rendered pages over HTTP",
	Long: `Serve loads a document and exposes it read-only over HTTP:
metadata and chapter listing at /api/document, reflowed chapters at
/api/chapters/{index}, and rendered pages at /api/pages/{page}?mode=.
Set QUIETREAD_API_KEY to require a bearer token.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from QUIETREAD_HTTP_ADDR)")
	serveCmd.Flags().Int("width", 0, "wrap column (0 = detect from terminal)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	doc, renderer, err := loadDocument(cmd, args[0], cfg)
	if err != nil {
		return err
	}

	srv := api.NewServer(doc, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("serving document",
		"title", doc.Metadata.Title,
		"pages", renderer.PageCount(),
		"addr", cfg.HTTPAddr,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

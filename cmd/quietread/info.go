package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietread/quietread/internal/config"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show document metadata and chapter listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().Int("width", 0, "wrap column (0 = detect from terminal)")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	doc, renderer, err := loadDocument(cmd, args[0], cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title:       %s\n", doc.Metadata.Title)
	fmt.Fprintf(out, "Author:      %s\n", doc.Metadata.Author)
	fmt.Fprintf(out, "Format:      %s\n", doc.Metadata.Format)
	fmt.Fprintf(out, "Fingerprint: %s\n", doc.Metadata.Fingerprint)
	fmt.Fprintf(out, "Pages:       %d (%d lines at width %d)\n",
		renderer.PageCount(), renderer.LineCount(), renderer.Width())
	fmt.Fprintf(out, "Chapters:    %d\n\n", len(doc.Chapters))
	for _, ch := range doc.Chapters {
		fmt.Fprintf(out, "  %3d  %s (line %d)\n", ch.Index, ch.Title, renderer.ChapterStart(ch.Index))
	}
	return nil
}

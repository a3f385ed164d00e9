package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietread/quietread/internal/config"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List saved reading positions",
	Args:  cobra.NoArgs,
	RunE:  runBookmarks,
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
}

func runBookmarks(cmd *cobra.Command, args []string) error {
	store, err := openStore(config.Load())
	if err != nil {
		return err
	}

	entries := store.List()
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No bookmarks saved.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-30s ch %d, line %d, mode %s  (%s)\n",
			e.Fingerprint, e.FileName, e.Chapter, e.ScrollLine, e.Mode,
			e.Timestamp.Format("2006-01-02 15:04"))
	}
	return nil
}

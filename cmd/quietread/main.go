// Package main is the entry point for the quietread CLI: a document
// reader that renders books, papers and manuals as plain text, as a
// synthetic source-code listing, or as a synthetic server-log stream.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

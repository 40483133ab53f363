// Package main provides the hireme CLI: find job postings, extract them into
// structured offers, and generate tailored resumes rendered as PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hireme",
	Short: "Job application assistant",
	Long:  "hireme discovers job postings, extracts them into structured offers, and generates resumes tailored to each offer from your candidate profile, rendered to PDF via RenderCV.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

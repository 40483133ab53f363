package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var findCommand = &cobra.Command{
	Use:   "find <query>",
	Short: "Search job boards and extract matching postings",
	Long: `Searches the configured job boards for postings matching the query,
extracts each posting into a structured offer and saves it under the
job-offers directory. Pages that turn out not to be job postings are
skipped; a single failing posting never aborts the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runFindCmd,
}

var (
	findConfigPath string
	findLocation   string
	findLimit      int
	findJSONLogs   bool
	findVerbose    bool
)

func init() {
	findCommand.Flags().StringVar(&findConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	findCommand.Flags().StringVarP(&findLocation, "location", "l", "", "Location filter for the search")
	findCommand.Flags().IntVarP(&findLimit, "limit", "n", 10, "Maximum postings per source")
	findCommand.Flags().BoolVar(&findJSONLogs, "json-logs", false, "Emit logs as JSON")
	findCommand.Flags().BoolVarP(&findVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(findCommand)
}

func runFindCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	cfg, err := resolveConfig(findConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(findJSONLogs, findVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	p, cleanup, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.RunFind(ctx, query, findLocation, findLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Discovered %d postings: %d extracted, %d skipped, %d failed\n",
		result.Discovered, result.Extracted, result.Skipped, result.Failed)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antoine/hireme/internal/pipeline"
)

var generateCommand = &cobra.Command{
	Use:   "generate <offer-key>",
	Short: "Generate a tailored resume PDF for a processed offer",
	Long: `Loads your candidate profile and the processed offer identified by
<offer-key> (see 'hireme db list'), tailors a resume to the offer and
renders it to PDF via RenderCV. Every fact in the generated resume is
checked against the profile before rendering.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateCmd,
}

var (
	generateConfigPath string
	generateProfileDir string
	generateOutputDir  string
	generateDesignPath string
	generateLanguage   string
	generateJSONLogs   bool
	generateVerbose    bool
)

func init() {
	generateCommand.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	generateCommand.Flags().StringVarP(&generateProfileDir, "profile", "p", "", "Candidate profile directory (defaults to configured profile dir)")
	generateCommand.Flags().StringVarP(&generateOutputDir, "output", "o", "", "Output directory for the YAML and PDF")
	generateCommand.Flags().StringVar(&generateDesignPath, "design", "", "RenderCV design.yaml override")
	generateCommand.Flags().StringVar(&generateLanguage, "language", "", "Resume language: en or fr")
	generateCommand.Flags().BoolVar(&generateJSONLogs, "json-logs", false, "Emit logs as JSON")
	generateCommand.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	offerKey := args[0]

	cfg, err := resolveConfig(generateConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profile") {
		cfg.ProfileDir = generateProfileDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = generateOutputDir
	}
	if cmd.Flags().Changed("design") {
		cfg.DesignPath = generateDesignPath
	}
	if cmd.Flags().Changed("language") {
		cfg.ResumeLanguage = generateLanguage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(generateJSONLogs, generateVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	p, cleanup, err := newPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := p.RunGenerate(ctx, pipeline.GenerateOptions{
		ProfileDir: cfg.ProfileDir,
		OfferKey:   offerKey,
		OutputDir:  cfg.OutputDir,
		DesignPath: cfg.DesignPath,
		Language:   cfg.ResumeLanguage,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Resume generated: %s\n", result.PDFPath)
	return nil
}

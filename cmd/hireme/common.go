package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/antoine/hireme/internal/config"
	"github.com/antoine/hireme/internal/llm"
	"github.com/antoine/hireme/internal/logger"
	"github.com/antoine/hireme/internal/pipeline"
	"github.com/antoine/hireme/internal/scraping"
	"github.com/antoine/hireme/internal/store"
)

// resolveConfig layers config file, environment and defaults.
func resolveConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	merged := cfg.MergeWithDefaults(config.Defaults(filepath.Join(home, ".hireme")))

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLLMClient builds the LLM client for the configured provider.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	var llmCfg *llm.Config
	switch cfg.LLMProvider {
	case "openai":
		llmCfg = llm.DefaultOpenAIConfig()
		if cfg.LLMBaseURL != "" {
			llmCfg.BaseURL = cfg.LLMBaseURL
		}
	default:
		llmCfg = llm.DefaultGeminiConfig()
	}
	if cfg.FallbackModel != "" {
		llmCfg.FallbackModel = cfg.FallbackModel
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey)
}

// newPipeline assembles the stores, sources and agents behind one pipeline.
func newPipeline(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Pipeline, func(), error) {
	files, err := store.NewFileStore(cfg.JobsDir)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	p := &pipeline.Pipeline{
		Client:  client,
		Files:   files,
		DB:      db,
		Sources: scraping.DefaultSources(),
		Log:     log,
	}
	cleanup := func() {
		_ = client.Close()
		_ = db.Close()
	}
	return p, cleanup, nil
}

func newLogger(jsonOutput, verbose bool) (*zap.Logger, error) {
	return logger.New(jsonOutput, verbose)
}

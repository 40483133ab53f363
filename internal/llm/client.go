// Package llm abstracts the language-model providers behind a single
// Client interface. Two providers are supported: Google Gemini and any
// OpenAI-compatible HTTP backend (e.g. a local Ollama server).
package llm

import "context"

// Client is the provider-neutral interface the agents talk to.
type Client interface {
	// GenerateContent generates free-form text for a prompt.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates a JSON document for a prompt. Implementations
	// enable the provider's JSON mode where available and strip markdown
	// fences, but callers still validate the result.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel resolves the provider model name for a tier.
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient builds a client for the provider named in config.
// An unrecognized provider falls back to Gemini.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Provider == ProviderOpenAI {
		return NewOpenAIClient(config, apiKey)
	}
	return NewGeminiClient(ctx, config, apiKey)
}

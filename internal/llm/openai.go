package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// chatTimeout bounds a single chat-completions round trip. Local models can
// be slow on first load.
const chatTimeout = 120 * time.Second

// OpenAIClient implements Client for any OpenAI-compatible chat backend:
// Ollama, OpenRouter, vLLM. The base URL and fallback model come from
// configuration, so switching backends needs no code change.
type OpenAIClient struct {
	http   *resty.Client
	config *Config
	apiKey string
}

// NewOpenAIClient creates a client for an OpenAI-compatible backend.
// An empty API key is allowed: local Ollama does not check one.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for the openai provider")
	}

	http := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(chatTimeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		http.SetHeader("Authorization", "Bearer "+apiKey)
	}

	return &OpenAIClient{
		http:   http,
		config: config,
		apiKey: apiKey,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.complete(ctx, prompt, tier, false)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.complete(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *OpenAIClient) Close() error {
	return nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, tier ModelTier, jsonMode bool) (string, error) {
	model := c.config.GetModel(tier)
	if model == "" {
		return "", fmt.Errorf("no model configured for tier %s and no fallback model set", tier)
	}

	body := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.1,
	}
	if jsonMode {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion returned %s: %s", resp.Status(), truncate(resp.String(), 200))
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no content in chat completion response")
	}
	return text, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

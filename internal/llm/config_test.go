package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel(t *testing.T) {
	t.Run("explicit tier mapping", func(t *testing.T) {
		cfg := DefaultGeminiConfig()
		assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
		assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
		assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	})

	t.Run("missing tier falls back to standard", func(t *testing.T) {
		cfg := &Config{Models: map[ModelTier]string{TierStandard: "m-std"}}
		assert.Equal(t, "m-std", cfg.GetModel(TierAdvanced))
	})

	t.Run("then to lite", func(t *testing.T) {
		cfg := &Config{Models: map[ModelTier]string{TierLite: "m-lite"}}
		assert.Equal(t, "m-lite", cfg.GetModel(TierAdvanced))
	})

	t.Run("then to the configured fallback", func(t *testing.T) {
		cfg := &Config{FallbackModel: "qwen3:14b", Models: map[ModelTier]string{}}
		assert.Equal(t, "qwen3:14b", cfg.GetModel(TierAdvanced))
	})

	t.Run("openai default uses fallback for all tiers", func(t *testing.T) {
		cfg := DefaultOpenAIConfig()
		assert.Equal(t, "qwen3:14b", cfg.GetModel(TierLite))
		assert.Equal(t, "qwen3:14b", cfg.GetModel(TierAdvanced))
	})
}

func TestWithModel(t *testing.T) {
	base := DefaultOpenAIConfig()
	custom := base.WithModel(TierAdvanced, "llama3.3:70b")

	assert.Equal(t, "llama3.3:70b", custom.GetModel(TierAdvanced))
	// The original config is not mutated.
	assert.Equal(t, "qwen3:14b", base.GetModel(TierAdvanced))
	assert.Equal(t, base.BaseURL, custom.BaseURL)
}

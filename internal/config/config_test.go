package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty path gives empty config", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"profile_dir": "/data/profile",
			"llm_provider": "openai",
			"llm_base_url": "http://localhost:11434/v1",
			"resume_language": "fr"
		}`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/profile", cfg.ProfileDir)
		assert.Equal(t, "openai", cfg.LLMProvider)
		assert.Equal(t, "fr", cfg.ResumeLanguage)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HIREME_LLM_PROVIDER", "openai")
	t.Setenv("HIREME_LLM_BASE_URL", "http://ollama:11434/v1")
	t.Setenv("HIREME_FALLBACK_MODEL", "qwen3:14b")
	t.Setenv("HIREME_RESUME_LANGUAGE", "fr")
	t.Setenv("GEMINI_API_KEY", "gk-123")

	cfg := &Config{}
	cfg.ApplyEnv()

	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "http://ollama:11434/v1", cfg.LLMBaseURL)
	assert.Equal(t, "qwen3:14b", cfg.FallbackModel)
	assert.Equal(t, "fr", cfg.ResumeLanguage)
	assert.Equal(t, "gk-123", cfg.APIKey)
}

func TestApplyEnvPrefixedKeyWins(t *testing.T) {
	t.Setenv("HIREME_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "plain")

	cfg := &Config{}
	cfg.ApplyEnv()
	assert.Equal(t, "prefixed", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{LLMProvider: "gemini", ResumeLanguage: "en"}).Validate())
	assert.NoError(t, (&Config{LLMProvider: "openai", ResumeLanguage: "fr"}).Validate())

	assert.Error(t, (&Config{LLMProvider: "anthropic"}).Validate())
	assert.Error(t, (&Config{ResumeLanguage: "de"}).Validate())
	assert.Error(t, (&Config{DesignPath: "/does/not/exist.yaml"}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults("/home/jane/.hireme")

	cfg := Config{ProfileDir: "/custom/profile", ResumeLanguage: "fr"}
	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values survive, gaps are filled.
	assert.Equal(t, "/custom/profile", merged.ProfileDir)
	assert.Equal(t, "fr", merged.ResumeLanguage)
	assert.Equal(t, filepath.Join("/home/jane/.hireme", "job_offers"), merged.JobsDir)
	assert.Equal(t, filepath.Join("/home/jane/.hireme", "hireme.db"), merged.DBPath)
	assert.Equal(t, "gemini", merged.LLMProvider)
}

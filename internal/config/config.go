// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "HIREME_"

// Config represents the CLI configuration. Values come from an optional
// JSON file, then HIREME_-prefixed environment variables, then CLI flags;
// later layers win.
type Config struct {
	// Paths
	ProfileDir string `json:"profile_dir,omitempty"` // Candidate profile directory
	JobsDir    string `json:"jobs_dir,omitempty"`    // Offers directory (raw/ + processed/)
	OutputDir  string `json:"output_dir,omitempty"`  // Rendered resume output directory
	DBPath     string `json:"db_path,omitempty"`     // SQLite offers index
	DesignPath string `json:"design_path,omitempty"` // RenderCV design.yaml override

	// LLM
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	LLMProvider   string `json:"llm_provider,omitempty"`   // "gemini" or "openai"
	LLMBaseURL    string `json:"llm_base_url,omitempty"`   // OpenAI-compatible base URL
	FallbackModel string `json:"fallback_model,omitempty"` // Model used when no tier mapping matches

	// Behavior
	ResumeLanguage string `json:"resume_language,omitempty"` // Output language ("en" or "fr")
	Verbose        bool   `json:"verbose,omitempty"`         // Debug logging
}

// Load reads configuration from a JSON file. An empty path returns an empty
// config so env and flags still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays HIREME_-prefixed environment variables onto the config.
// GEMINI_API_KEY is also honored without the prefix for compatibility with
// the Gemini SDK convention.
func (c *Config) ApplyEnv() {
	setIfEnv := func(dst *string, key string) {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	setIfEnv(&c.ProfileDir, "PROFILE_DIR")
	setIfEnv(&c.JobsDir, "JOBS_DIR")
	setIfEnv(&c.OutputDir, "OUTPUT_DIR")
	setIfEnv(&c.DBPath, "DB_PATH")
	setIfEnv(&c.DesignPath, "DESIGN_PATH")
	setIfEnv(&c.APIKey, "API_KEY")
	setIfEnv(&c.LLMProvider, "LLM_PROVIDER")
	setIfEnv(&c.LLMBaseURL, "LLM_BASE_URL")
	setIfEnv(&c.FallbackModel, "FALLBACK_MODEL")
	setIfEnv(&c.ResumeLanguage, "RESUME_LANGUAGE")

	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("config error: unknown llm_provider %q (want gemini or openai)", c.LLMProvider)
	}

	switch c.ResumeLanguage {
	case "", "en", "fr":
	default:
		return fmt.Errorf("config error: unsupported resume_language %q (want en or fr)", c.ResumeLanguage)
	}

	if c.DesignPath != "" {
		if _, err := os.Stat(c.DesignPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: design file not found: %s", c.DesignPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.JobsDir == "" {
		result.JobsDir = defaults.JobsDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DBPath == "" {
		result.DBPath = defaults.DBPath
	}
	if result.DesignPath == "" {
		result.DesignPath = defaults.DesignPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.LLMBaseURL == "" {
		result.LLMBaseURL = defaults.LLMBaseURL
	}
	if result.FallbackModel == "" {
		result.FallbackModel = defaults.FallbackModel
	}
	if result.ResumeLanguage == "" {
		result.ResumeLanguage = defaults.ResumeLanguage
	}

	// Bool fields: cannot distinguish unset from false, so flags always win.

	return result
}

// Defaults returns the built-in configuration rooted under baseDir
// (typically ~/.hireme).
func Defaults(baseDir string) Config {
	return Config{
		ProfileDir:     filepath.Join(baseDir, "profile"),
		JobsDir:        filepath.Join(baseDir, "job_offers"),
		OutputDir:      filepath.Join(baseDir, "output"),
		DBPath:         filepath.Join(baseDir, "hireme.db"),
		LLMProvider:    "gemini",
		ResumeLanguage: "en",
	}
}

package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatResponse(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` +
		string(mustJSON(content)) + `}}]}`
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func TestOpenAIClientGenerateJSON(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("```json\n{\"title\": \"Engineer\"}\n```")))
	}))
	defer server.Close()

	cfg := &Config{
		Provider:      ProviderOpenAI,
		BaseURL:       server.URL,
		FallbackModel: "qwen3:14b",
		Models:        map[ModelTier]string{},
	}
	client, err := NewOpenAIClient(cfg, "test-key")
	require.NoError(t, err)

	text, err := client.GenerateJSON(context.Background(), "extract this", TierStandard)
	require.NoError(t, err)

	// Fences stripped, JSON mode requested, model and auth forwarded.
	assert.Equal(t, `{"title": "Engineer"}`, text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "qwen3:14b", gotBody["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, gotBody["response_format"])
}

func TestOpenAIClientGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		// Plain content requests must not force JSON mode.
		assert.NotContains(t, req, "response_format")

		_, _ = w.Write([]byte(chatResponse("plain text answer")))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&Config{BaseURL: server.URL, FallbackModel: "m"}, "")
	require.NoError(t, err)

	text, err := client.GenerateContent(context.Background(), "hello", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "plain text answer", text)
}

func TestOpenAIClientErrors(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		_, err := NewOpenAIClient(&Config{}, "")
		require.Error(t, err)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		client, err := NewOpenAIClient(&Config{BaseURL: server.URL, FallbackModel: "m"}, "")
		require.NoError(t, err)

		_, err = client.GenerateJSON(context.Background(), "p", TierStandard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()

		client, err := NewOpenAIClient(&Config{BaseURL: server.URL, FallbackModel: "m"}, "")
		require.NoError(t, err)

		_, err = client.GenerateJSON(context.Background(), "p", TierStandard)
		require.Error(t, err)
	})

	t.Run("no model and no fallback", func(t *testing.T) {
		client, err := NewOpenAIClient(&Config{BaseURL: "http://localhost:1", Models: map[ModelTier]string{}}, "")
		require.NoError(t, err)

		_, err = client.GenerateJSON(context.Background(), "p", TierStandard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no model configured")
	})
}

func TestTruncateIsRuneSafe(t *testing.T) {
	long := strings.Repeat("é", 30)
	out := truncate(long, 10)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("é", 10)+"...", out)
	assert.Equal(t, "short", truncate("short", 10))
}

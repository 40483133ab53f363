package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer server.Close()

		result, err := URL(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.Contains(t, result.HTML, "hello")
		assert.Equal(t, DefaultUserAgent, gotUA)
	})

	t.Run("custom headers", func(t *testing.T) {
		var gotHeader string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		opts := DefaultOptions()
		opts.Headers = map[string]string{"Accept-Language": "fr-FR"}
		_, err := URL(context.Background(), server.URL, opts)
		require.NoError(t, err)
		assert.Equal(t, "fr-FR", gotHeader)
	})

	t.Run("non-200 status is an error with result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		result, err := URL(context.Background(), server.URL, nil)
		require.Error(t, err)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		require.NotNil(t, result)
		assert.Equal(t, http.StatusNotFound, result.StatusCode)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := URL(context.Background(), "not a url", nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
	})

	t.Run("context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(2 * time.Second)
			_, _ = w.Write([]byte("late"))
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := URL(ctx, server.URL, nil)
		require.Error(t, err)
	})
}

func TestExtractMainText(t *testing.T) {
	t.Run("prefers content selector over body", func(t *testing.T) {
		html := `<html><body>
			<nav>Home | Jobs | About</nav>
			<div class="job-description">
				<h1>Backend Engineer</h1>
				<p>We build payment rails.</p>
			</div>
			<footer>Copyright</footer>
		</body></html>`

		text, err := ExtractMainText(html, JobPostingSelectors())
		require.NoError(t, err)
		assert.Contains(t, text, "Backend Engineer")
		assert.Contains(t, text, "payment rails")
		assert.NotContains(t, text, "Copyright")
		assert.NotContains(t, text, "Home | Jobs")
	})

	t.Run("falls back to body", func(t *testing.T) {
		html := `<html><body><p>Just text.</p><script>alert(1)</script></body></html>`

		text, err := ExtractMainText(html, JobPostingSelectors())
		require.NoError(t, err)
		assert.Contains(t, text, "Just text.")
		assert.NotContains(t, text, "alert")
	})

	t.Run("extra noise selectors removed", func(t *testing.T) {
		html := `<html><body><main><p>Keep me.</p><div class="apply-widget">Apply now!</div></main></body></html>`

		text, err := ExtractMainText(html, []string{"main"}, ".apply-widget")
		require.NoError(t, err)
		assert.Contains(t, text, "Keep me.")
		assert.NotContains(t, text, "Apply now")
	})

	t.Run("blank lines collapsed", func(t *testing.T) {
		html := "<html><body><main><p>one</p>\n\n\n<p>  two  </p></main></body></html>"

		text, err := ExtractMainText(html, []string{"main"})
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo", text)
	})
}

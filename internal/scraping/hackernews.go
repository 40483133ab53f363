package scraping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/antoine/hireme/internal/fetch"
)

const hnAlgoliaURL = "https://hn.algolia.com/api/v1/search"

// hnAlgoliaResponse is the response from the Hacker News Algolia API.
type hnAlgoliaResponse struct {
	Hits   []hnHit `json:"hits"`
	NbHits int     `json:"nbHits"`
}

// hnHit is a single result from the HN Algolia API (story or comment).
type hnHit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	CreatedAtI  int64  `json:"created_at_i"`
	StoryText   string `json:"story_text"`
	CommentText string `json:"comment_text"`
	ObjectID    string `json:"objectID"`
	StoryID     *int64 `json:"story_id"`
}

// HackerNewsSource discovers postings in "Ask HN: Who is hiring?" comments
// via the Algolia search API.
type HackerNewsSource struct {
	apiURL string
	opts   *fetch.Options
}

// NewHackerNewsSource creates a Hacker News source. opts may be nil for
// defaults.
func NewHackerNewsSource(opts *fetch.Options) *HackerNewsSource {
	return &HackerNewsSource{
		apiURL: hnAlgoliaURL,
		opts:   opts,
	}
}

// WithAPIURL overrides the Algolia endpoint. Used in tests.
func (s *HackerNewsSource) WithAPIURL(apiURL string) *HackerNewsSource {
	s.apiURL = apiURL
	return s
}

func (s *HackerNewsSource) Name() string {
	return "hackernews"
}

// Search queries Who-is-Hiring comments matching the query. Location is
// folded into the query text since the API has no location filter.
func (s *HackerNewsSource) Search(ctx context.Context, query, location string, limit int) ([]Posting, error) {
	searchQuery := query
	if location != "" {
		searchQuery += " " + location
	}

	params := url.Values{}
	params.Set("query", searchQuery)
	params.Set("tags", "comment")
	if limit > 0 {
		params.Set("hitsPerPage", fmt.Sprintf("%d", limit))
	}

	result, err := fetch.URL(ctx, s.apiURL+"?"+params.Encode(), s.opts)
	if err != nil {
		return nil, &SourceError{
			Source:  s.Name(),
			Message: "Algolia request failed",
			Cause:   err,
		}
	}

	var resp hnAlgoliaResponse
	if err := json.Unmarshal([]byte(result.HTML), &resp); err != nil {
		return nil, &SourceError{
			Source:  s.Name(),
			Message: "failed to decode Algolia response",
			Cause:   err,
		}
	}

	var postings []Posting
	for _, hit := range resp.Hits {
		text := hit.CommentText
		if text == "" {
			text = hit.StoryText
		}
		text = stripHTMLTags(text)
		if text == "" {
			continue
		}

		postings = append(postings, Posting{
			URL:     hnItemURL(hit),
			Title:   firstLine(text),
			Source:  s.Name(),
			RawText: text,
		})
		if limit > 0 && len(postings) >= limit {
			break
		}
	}

	return postings, nil
}

func hnItemURL(hit hnHit) string {
	if hit.URL != "" {
		return hit.URL
	}
	return "https://news.ycombinator.com/item?id=" + hit.ObjectID
}

// stripHTMLTags converts the lightly-marked-up comment HTML to plain text.
func stripHTMLTags(s string) string {
	replacer := strings.NewReplacer(
		"<p>", "\n", "</p>", "",
		"<i>", "", "</i>", "",
		"<b>", "", "</b>", "",
		"<pre>", "\n", "</pre>", "\n",
		"<code>", "", "</code>", "",
		"&#x27;", "'", "&quot;", "\"",
		"&amp;", "&", "&gt;", ">", "&lt;", "<",
		"&#x2F;", "/",
	)
	out := replacer.Replace(s)

	// Drop anchor tags but keep their text.
	for {
		start := strings.Index(out, "<a ")
		if start < 0 {
			break
		}
		end := strings.Index(out[start:], ">")
		if end < 0 {
			break
		}
		out = out[:start] + out[start+end+1:]
	}
	out = strings.ReplaceAll(out, "</a>", "")

	return strings.TrimSpace(out)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	const maxTitle = 120
	if runes := []rune(s); len(runes) > maxTitle {
		s = string(runes[:maxTitle])
	}
	return s
}

package scraping

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/antoine/hireme/internal/fetch"
)

const indeedBaseURL = "https://www.indeed.com"

// IndeedSource discovers postings on Indeed via the public search page.
type IndeedSource struct {
	baseURL string
	opts    *fetch.Options
}

// NewIndeedSource creates an Indeed source. opts may be nil for defaults.
func NewIndeedSource(opts *fetch.Options) *IndeedSource {
	return &IndeedSource{
		baseURL: indeedBaseURL,
		opts:    opts,
	}
}

// WithBaseURL overrides the board URL. Used in tests.
func (s *IndeedSource) WithBaseURL(baseURL string) *IndeedSource {
	s.baseURL = strings.TrimSuffix(baseURL, "/")
	return s
}

func (s *IndeedSource) Name() string {
	return "indeed"
}

// Search queries the Indeed search page and fetches each posting's text.
func (s *IndeedSource) Search(ctx context.Context, query, location string, limit int) ([]Posting, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s", s.baseURL, url.QueryEscape(query))
	if location != "" {
		searchURL += "&l=" + url.QueryEscape(location)
	}

	result, err := fetch.URL(ctx, searchURL, s.opts)
	if err != nil {
		return nil, &SourceError{
			Source:  s.Name(),
			Message: "search request failed",
			Cause:   err,
		}
	}

	links, err := s.parseSearchPage(result.HTML)
	if err != nil {
		return nil, &SourceError{
			Source:  s.Name(),
			Message: "failed to parse search results",
			Cause:   err,
		}
	}

	if limit > 0 && len(links) > limit {
		links = links[:limit]
	}

	var postings []Posting
	for _, link := range links {
		posting, err := s.fetchPosting(ctx, link)
		if err != nil {
			// A single broken posting does not fail the search.
			continue
		}
		postings = append(postings, *posting)
	}

	return postings, nil
}

type indeedLink struct {
	url     string
	title   string
	company string
}

// parseSearchPage extracts viewjob links from a search results page.
func (s *IndeedSource) parseSearchPage(html string) ([]indeedLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []indeedLink

	doc.Find("a[href*='viewjob'], a.jcs-JobTitle").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		jobURL := s.resolveURL(href)
		if jobURL == "" || seen[jobURL] {
			return
		}
		seen[jobURL] = true

		link := indeedLink{url: jobURL, title: strings.TrimSpace(sel.Text())}
		if card := sel.Closest(".job_seen_beacon, .result"); card.Length() > 0 {
			link.company = strings.TrimSpace(card.Find("[data-testid='company-name'], .companyName").First().Text())
		}
		links = append(links, link)
	})

	return links, nil
}

func (s *IndeedSource) resolveURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return s.baseURL + href
	}
	return ""
}

// fetchPosting retrieves a posting page and extracts its main text.
func (s *IndeedSource) fetchPosting(ctx context.Context, link indeedLink) (*Posting, error) {
	result, err := fetch.URL(ctx, link.url, s.opts)
	if err != nil {
		return nil, err
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return nil, err
	}

	return &Posting{
		URL:     link.url,
		Title:   link.title,
		Company: link.company,
		Source:  s.Name(),
		RawText: text,
	}, nil
}

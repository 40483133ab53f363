// Package scraping discovers job postings on external boards and returns
// their raw text content for downstream extraction.
package scraping

import (
	"context"
	"fmt"
)

// Posting is a discovered job posting with its raw text content.
type Posting struct {
	URL     string
	Title   string
	Company string
	Source  string
	RawText string
}

// Source discovers postings on a single job board.
type Source interface {
	// Name identifies the source in logs and the offers index.
	Name() string

	// Search returns up to limit postings matching the query and location.
	// Location may be empty for sources that do not support it.
	Search(ctx context.Context, query, location string, limit int) ([]Posting, error)
}

// SourceError represents a failure of a single source. Callers skip the
// source and continue with the others.
type SourceError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// DefaultSources returns the built-in sources.
func DefaultSources() []Source {
	return []Source{
		NewIndeedSource(nil),
		NewHackerNewsSource(nil),
	}
}

// Package models defines the data structures shared across the pipeline:
// raw fetched documents, extracted articles, per-article sentiment results,
// and the aggregated comparative report.
package models

import "time"

// RawDocument is a candidate article as returned by a source, before
// extraction. Body may be full HTML (web search sources) or pre-cleaned
// text (RSS descriptions).
type RawDocument struct {
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Body        string    `json:"-"`
	IsHTML      bool      `json:"-"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// ArticleRecord is a clean article produced by the extractor.
// Immutable once created; owned by the run that produced it.
type ArticleRecord struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Body        string    `json:"-"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// SourceError records a source that failed during a run. Failures are
// informational; they never abort the run.
type SourceError struct {
	Source string `json:"source"`
	Err    string `json:"error"`
}

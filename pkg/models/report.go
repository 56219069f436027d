package models

import "time"

// Verdict is the overall sentiment call for a company across all articles.
type Verdict string

const (
	VerdictStronglyPositive Verdict = "strongly positive"
	VerdictMildlyPositive   Verdict = "mildly positive"
	VerdictStronglyNegative Verdict = "strongly negative"
	VerdictMildlyNegative   Verdict = "mildly negative"
	VerdictMixed            Verdict = "mixed"
	VerdictInsufficientData Verdict = "insufficient data"
)

// PolarityCounts is the sentiment distribution across a run's articles.
// Positive+Negative+Neutral always equals the number of scored articles.
type PolarityCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of articles the counts were built from.
func (pc PolarityCounts) Total() int {
	return pc.Positive + pc.Negative + pc.Neutral
}

// CoverageDifference describes how two articles diverge in sentiment or focus.
type CoverageDifference struct {
	Comparison string `json:"comparison"`
	Impact     string `json:"impact"`
}

// TopicOverlap splits topics into those shared by multiple articles and
// those unique to a single one.
type TopicOverlap struct {
	Common []string `json:"common"`
	Unique []string `json:"unique"`
}

// ComparativeReport is the aggregate produced once per run from the full
// set of SentimentResults. Read-only after creation.
type ComparativeReport struct {
	Company        string               `json:"company"`
	Counts         PolarityCounts       `json:"sentiment_distribution"`
	TopicFrequency map[string]int       `json:"topic_frequency,omitempty"`
	Overlap        TopicOverlap         `json:"topic_overlap"`
	Differences    []CoverageDifference `json:"coverage_differences,omitempty"`
	Verdict        Verdict              `json:"verdict"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// RunResult is the complete outcome of one company analysis run.
type RunResult struct {
	Company      string            `json:"company"`
	Articles     []SentimentResult `json:"articles"`
	Report       ComparativeReport `json:"comparative_report"`
	Rendered     string            `json:"rendered_report"`
	SourceErrors []SourceError     `json:"source_errors,omitempty"`
	FetchedAt    time.Time         `json:"fetched_at"`
}

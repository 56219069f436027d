package report

import (
	"strings"
	"testing"
	"time"

	"github.com/newsvani/newsvani/pkg/models"
)

func testRun() models.RunResult {
	articles := []models.SentimentResult{
		{
			Article: models.ArticleRecord{
				Source: "Test Feed",
				Title:  "Acme profit surges",
				URL:    "https://example.com/1",
			},
			Polarity: models.PolarityPositive,
			Score:    0.61,
			Topics:   []string{"Finance"},
		},
		{
			Article: models.ArticleRecord{
				Source: "Web Search",
				Title:  "Acme faces regulatory probe",
				URL:    "https://example.com/2",
			},
			Polarity: models.PolarityNegative,
			Score:    -0.52,
			Topics:   []string{"Regulation"},
		},
	}

	return models.RunResult{
		Company:  "Acme Corp",
		Articles: articles,
		Report: models.ComparativeReport{
			Company:        "Acme Corp",
			Counts:         models.PolarityCounts{Positive: 1, Negative: 1},
			TopicFrequency: map[string]int{"Finance": 1, "Regulation": 1},
			Overlap:        models.TopicOverlap{Unique: []string{"Finance", "Regulation"}},
			Differences: []models.CoverageDifference{
				{Comparison: "Article 1 has a positive sentiment, while article 2 has a negative sentiment.", Impact: "Mixed signals."},
			},
			Verdict:     models.VerdictMixed,
			GeneratedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		SourceErrors: []models.SourceError{{Source: "Broken Feed", Err: "timeout"}},
	}
}

func TestRenderContainsAllAggregateFields(t *testing.T) {
	out, err := Render(testRun())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Acme Corp",
		"Articles analyzed: 2",
		"Acme profit surges",
		"Acme faces regulatory probe",
		"Test Feed",
		"https://example.com/1",
		"https://example.com/2",
		"Positive: 1",
		"Negative: 1",
		"Neutral:  0",
		"Finance: 1",
		"Regulation: 1",
		"Coverage Differences",
		"Mixed signals.",
		"Overall Verdict: mixed",
		"Sources skipped: Broken Feed (timeout)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered report missing %q\n---\n%s", want, out)
		}
	}
}

func TestRenderFieldOrder(t *testing.T) {
	out, err := Render(testRun())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Aggregate sections must appear in fixed order.
	sections := []string{
		"Sentiment Distribution",
		"Topic Frequency",
		"Topic Overlap",
		"Coverage Differences",
		"Overall Verdict",
	}
	last := -1
	for _, sec := range sections {
		idx := strings.Index(out, sec)
		if idx < 0 {
			t.Fatalf("section %q missing", sec)
		}
		if idx < last {
			t.Errorf("section %q out of order", sec)
		}
		last = idx
	}
}

func TestRenderInsufficientData(t *testing.T) {
	run := models.RunResult{
		Company: "Ghost Inc",
		Report: models.ComparativeReport{
			Company:     "Ghost Inc",
			Verdict:     models.VerdictInsufficientData,
			GeneratedAt: time.Now(),
		},
	}

	out, err := Render(run)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Overall Verdict: insufficient data") {
		t.Errorf("missing insufficient-data verdict:\n%s", out)
	}
	if !strings.Contains(out, "Articles analyzed: 0") {
		t.Errorf("missing zero article count:\n%s", out)
	}
}

func TestTopicLinesSorted(t *testing.T) {
	lines := topicLines(map[string]int{"B": 1, "A": 1, "C": 5})
	if lines[0].Topic != "C" {
		t.Errorf("expected highest count first, got %v", lines)
	}
	if lines[1].Topic != "A" || lines[2].Topic != "B" {
		t.Errorf("expected alphabetical tie-break, got %v", lines)
	}
}

func TestRenderDeterministic(t *testing.T) {
	run := testRun()
	first, err := Render(run)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Render(run)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatal("rendered output changed between runs")
		}
	}
}

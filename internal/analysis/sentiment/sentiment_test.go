package sentiment

import (
	"testing"

	"github.com/newsvani/newsvani/pkg/models"
)

func TestScoreTextPositive(t *testing.T) {
	score, conf := ScoreText("Shares surge on strong growth and record high profit")
	if score <= 0 {
		t.Errorf("expected positive score, got %.4f", score)
	}
	if conf <= 0.2 {
		t.Errorf("expected raised confidence with multiple matches, got %.4f", conf)
	}
}

func TestScoreTextNegative(t *testing.T) {
	score, conf := ScoreText("Stock crash deepens as fraud investigation triggers selloff")
	if score >= 0 {
		t.Errorf("expected negative score, got %.4f", score)
	}
	if conf <= 0 {
		t.Errorf("expected positive confidence, got %.4f", conf)
	}
}

func TestScoreTextNoSignal(t *testing.T) {
	score, conf := ScoreText("The company relocated its office to a different street")
	if score != 0 {
		t.Errorf("expected zero score without lexicon matches, got %.4f", score)
	}
	if conf > 0.2 {
		t.Errorf("expected low confidence, got %.4f", conf)
	}
}

func TestScoreTextDeterministic(t *testing.T) {
	const text = "Profit growth beats estimates despite regulatory concern and weak margins"

	firstScore, firstConf := ScoreText(text)
	firstLabel := Classify(firstScore)
	for i := 0; i < 50; i++ {
		score, conf := ScoreText(text)
		if score != firstScore || conf != firstConf {
			t.Fatalf("run %d: score/conf changed: (%.6f, %.6f) vs (%.6f, %.6f)",
				i, score, conf, firstScore, firstConf)
		}
		if Classify(score) != firstLabel {
			t.Fatalf("run %d: polarity changed", i)
		}
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Polarity
	}{
		{0.5, models.PolarityPositive},
		{0.05, models.PolarityPositive},
		{0.049, models.PolarityNeutral},
		{0.0, models.PolarityNeutral},
		{-0.049, models.PolarityNeutral},
		{-0.05, models.PolarityNegative},
		{-0.8, models.PolarityNegative},
	}
	for _, tt := range tests {
		if got := Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%.3f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreArticle(t *testing.T) {
	article := models.ArticleRecord{
		Source:  "Test Feed",
		Title:   "Acme posts record high profit on strong earnings growth",
		Summary: "Revenue and profit surged this quarter.",
		Body:    "Revenue and profit surged this quarter as the company expanded into new markets.",
		URL:     "https://example.com/a",
	}

	res := ScoreArticle(article)
	if res.Polarity != models.PolarityPositive {
		t.Errorf("polarity: got %s", res.Polarity)
	}
	if res.Article.URL != article.URL {
		t.Error("result must reference its article")
	}
	if len(res.Topics) == 0 {
		t.Error("expected topic tags")
	}
}

func TestScoreAllPreservesOrderAndCount(t *testing.T) {
	articles := []models.ArticleRecord{
		{Title: "Profit surges", Summary: "strong growth"},
		{Title: "Plain announcement", Summary: "office relocation"},
		{Title: "Shares plunge on fraud probe", Summary: "selloff continues"},
	}

	results := ScoreAll(articles)
	if len(results) != len(articles) {
		t.Fatalf("expected %d results, got %d", len(articles), len(results))
	}
	for i := range articles {
		if results[i].Article.Title != articles[i].Title {
			t.Errorf("result %d references wrong article", i)
		}
	}
	if results[0].Polarity != models.PolarityPositive {
		t.Errorf("first: got %s", results[0].Polarity)
	}
	if results[1].Polarity != models.PolarityNeutral {
		t.Errorf("second: got %s", results[1].Polarity)
	}
	if results[2].Polarity != models.PolarityNegative {
		t.Errorf("third: got %s", results[2].Polarity)
	}
}

func TestExtractTopics(t *testing.T) {
	topics := ExtractTopics("The CEO announced strong earnings and a new product launch")

	want := map[string]bool{"Management": true, "Finance": true, "Products": true}
	for _, topic := range topics {
		if !want[topic] {
			t.Errorf("unexpected topic %q", topic)
		}
		delete(want, topic)
	}
	for missing := range want {
		t.Errorf("missing topic %q", missing)
	}
}

func TestExtractTopicsDeduplicated(t *testing.T) {
	// "earnings" appearing twice still tags Finance once.
	topics := ExtractTopics("earnings report shows earnings doubled")
	count := 0
	for _, topic := range topics {
		if topic == "Finance" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Finance tagged %d times, want 1", count)
	}
}

func TestExtractTopicsSorted(t *testing.T) {
	a := ExtractTopics("regulatory policy hits tech software sector earnings")
	b := ExtractTopics("regulatory policy hits tech software sector earnings")
	if len(a) != len(b) {
		t.Fatal("non-deterministic topic extraction")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("topic order changed between runs")
		}
		if i > 0 && a[i-1] > a[i] {
			t.Errorf("topics not sorted: %v", a)
		}
	}
}

func TestExtractTopicsEmpty(t *testing.T) {
	if topics := ExtractTopics("completely unrelated sentence about weather"); len(topics) != 0 {
		t.Errorf("expected no topics, got %v", topics)
	}
}

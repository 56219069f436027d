// Package sentiment assigns a deterministic polarity label and topic tags
// to each extracted article. Scoring is keyword-lexicon based: no model
// calls, no randomness, so repeated runs over the same corpus always yield
// identical labels.
package sentiment

import (
	"math"
	"strings"

	"github.com/newsvani/newsvani/pkg/models"
)

// Polarity thresholds on the compound score. Values between them are
// neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// ScoreText returns a compound sentiment score in [-1, +1] and a
// confidence in [0, 1] for the given text.
func ScoreText(text string) (score float64, confidence float64) {
	lower := strings.ToLower(text)

	posScore := 0.0
	negScore := 0.0
	matches := 0

	for _, word := range positiveKeys {
		if strings.Contains(lower, word) {
			posScore += positiveWords[word]
			matches++
		}
	}
	for _, word := range negativeKeys {
		if strings.Contains(lower, word) {
			negScore += negativeWords[word]
			matches++
		}
	}

	if matches == 0 {
		return 0, 0.1 // no signal
	}

	total := posScore + negScore
	if total == 0 {
		return 0, 0.1
	}

	// Net score normalized to -1..+1.
	score = (posScore - negScore) / total

	// Confidence from keyword match density, capped.
	confidence = math.Min(float64(matches)*0.15+0.2, 0.85)

	return score, confidence
}

// Classify maps a compound score to a polarity label.
func Classify(score float64) models.Polarity {
	switch {
	case score >= positiveThreshold:
		return models.PolarityPositive
	case score <= negativeThreshold:
		return models.PolarityNegative
	default:
		return models.PolarityNeutral
	}
}

// ScoreArticle scores one article and tags its topics. The title is
// weighted alongside the summary: headlines carry most of the sentiment
// signal in news copy.
func ScoreArticle(article models.ArticleRecord) models.SentimentResult {
	text := article.Title
	if article.Summary != "" {
		text += " " + article.Summary
	}

	score, confidence := ScoreText(text)

	return models.SentimentResult{
		Article:    article,
		Polarity:   Classify(score),
		Score:      score,
		Confidence: confidence,
		Topics:     ExtractTopics(article.Title + " " + article.Body),
	}
}

// ScoreAll scores a batch of articles, preserving input order.
func ScoreAll(articles []models.ArticleRecord) []models.SentimentResult {
	results := make([]models.SentimentResult, 0, len(articles))
	for _, a := range articles {
		results = append(results, ScoreArticle(a))
	}
	return results
}

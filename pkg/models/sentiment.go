package models

// Polarity is the categorical sentiment label assigned to an article.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// SentimentResult holds the sentiment scoring outcome for one article.
// One-to-one with the ArticleRecord it references.
type SentimentResult struct {
	Article    ArticleRecord `json:"article"`
	Polarity   Polarity      `json:"polarity"`
	Score      float64       `json:"score"`      // compound score in [-1, +1]
	Confidence float64       `json:"confidence"` // 0..1, from lexicon match density
	Topics     []string      `json:"topics,omitempty"`
}

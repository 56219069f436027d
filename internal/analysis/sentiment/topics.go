package sentiment

import (
	"sort"
	"strings"
)

// topicKeywords maps report topics to the lowercase keywords that signal
// them in article text.
var topicKeywords = map[string][]string{
	"Finance": {
		"finance", "financial", "stock", "investment", "investor",
		"profit", "revenue", "earnings", "market", "economy",
	},
	"Technology": {
		"technology", "tech", "digital", "software", "hardware",
		"app", "innovation", "artificial intelligence", "machine learning",
	},
	"Regulation": {
		"regulation", "regulatory", "compliance", "law", "legal",
		"legislation", "policy", "government",
	},
	"Expansion": {
		"growth", "expand", "expansion", "global", "international",
		"new markets", "strategy",
	},
	"Products": {
		"product", "launch", "release", "feature", "service", "solution",
	},
	"Management": {
		"ceo", "executive", "leadership", "management", "board",
		"director", "chairman",
	},
	"Industry": {
		"industry", "sector", "competition", "competitor", "market share",
	},
	"Innovation": {
		"innovation", "r&d", "research", "development", "patent",
		"breakthrough", "disruptive",
	},
}

// ExtractTopics tags article text with the topics whose keywords appear in
// it. Each topic appears at most once regardless of how many of its
// keywords match; the result is sorted for deterministic output.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)

	var topics []string
	for topic, keywords := range topicKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}

	sort.Strings(topics)
	return topics
}

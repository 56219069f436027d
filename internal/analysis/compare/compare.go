// Package compare merges per-article sentiment results into a single
// ComparativeReport: sentiment distribution, topic overlap and frequency,
// coverage differences between articles, and an overall verdict.
package compare

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/newsvani/newsvani/pkg/models"
)

// maxComparisons bounds how many coverage differences a report carries.
const maxComparisons = 3

// Threshold above which coverage counts as predominantly one-sided.
const dominantShare = 0.6

// Build creates the ComparativeReport for a run. An empty input produces
// the insufficient-data report, never an error. The polarity counts always
// sum to len(results).
func Build(company string, results []models.SentimentResult) models.ComparativeReport {
	report := models.ComparativeReport{
		Company:     company,
		GeneratedAt: time.Now().UTC(),
	}

	if len(results) == 0 {
		report.Verdict = models.VerdictInsufficientData
		report.Overlap = models.TopicOverlap{}
		return report
	}

	for _, r := range results {
		switch r.Polarity {
		case models.PolarityPositive:
			report.Counts.Positive++
		case models.PolarityNegative:
			report.Counts.Negative++
		default:
			report.Counts.Neutral++
		}
	}

	report.TopicFrequency = topicFrequency(results)
	report.Overlap = topicOverlap(report.TopicFrequency)
	report.Differences = coverageDifferences(results)
	report.Verdict = verdict(report.Counts)

	return report
}

// topicFrequency counts, per topic, how many articles mention it.
// Matching is case-insensitive and each article contributes at most one
// count per topic, however often it repeats the term.
func topicFrequency(results []models.SentimentResult) map[string]int {
	freq := make(map[string]int)
	for _, r := range results {
		seen := make(map[string]bool, len(r.Topics))
		for _, topic := range r.Topics {
			key := canonicalTopic(topic)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			freq[key]++
		}
	}
	if len(freq) == 0 {
		return nil
	}
	return freq
}

// canonicalTopic lowercases then title-cases the first rune, so "finance"
// and "Finance" collapse into one bucket.
func canonicalTopic(topic string) string {
	topic = strings.TrimSpace(strings.ToLower(topic))
	if topic == "" {
		return ""
	}
	return strings.ToUpper(topic[:1]) + topic[1:]
}

// topicOverlap splits topics into common (mentioned by more than one
// article) and unique (mentioned by exactly one). Both lists are sorted.
func topicOverlap(freq map[string]int) models.TopicOverlap {
	var overlap models.TopicOverlap
	for topic, count := range freq {
		if count > 1 {
			overlap.Common = append(overlap.Common, topic)
		} else {
			overlap.Unique = append(overlap.Unique, topic)
		}
	}
	sort.Strings(overlap.Common)
	sort.Strings(overlap.Unique)
	return overlap
}

// coverageDifferences compares adjacent article pairs in input order.
// The pairing is deliberately deterministic so that identical inputs
// always produce the identical report.
func coverageDifferences(results []models.SentimentResult) []models.CoverageDifference {
	if len(results) < 2 {
		return nil
	}

	var diffs []models.CoverageDifference
	for i := 0; i+1 < len(results) && len(diffs) < maxComparisons; i++ {
		diffs = append(diffs, comparePair(i, results[i], i+1, results[i+1]))
	}
	return diffs
}

// comparePair describes how two articles diverge: polarity first, unique
// topics second.
func comparePair(i int, a models.SentimentResult, j int, b models.SentimentResult) models.CoverageDifference {
	uniqueA, uniqueB := uniqueTopics(a.Topics, b.Topics)

	var comparison, impact string
	switch {
	case a.Polarity != b.Polarity:
		comparison = fmt.Sprintf("Article %d has a %s sentiment, while article %d has a %s sentiment.",
			i+1, a.Polarity, j+1, b.Polarity)
		impact = "The contrast suggests mixed signals or differing perspectives on the company's situation."
	case len(uniqueA) > 0 && len(uniqueB) > 0:
		comparison = fmt.Sprintf("Article %d focuses on %s, while article %d focuses on %s.",
			i+1, strings.Join(uniqueA, ", "), j+1, strings.Join(uniqueB, ", "))
		impact = "The different focus areas give a broader view of the company's operations."
	case len(uniqueA) > 0:
		comparison = fmt.Sprintf("Article %d covers %s, which article %d does not mention.",
			i+1, strings.Join(uniqueA, ", "), j+1)
		impact = "One source covers ground the other omits."
	case len(uniqueB) > 0:
		comparison = fmt.Sprintf("Article %d covers %s, which article %d does not mention.",
			j+1, strings.Join(uniqueB, ", "), i+1)
		impact = "One source covers ground the other omits."
	default:
		comparison = fmt.Sprintf("Articles %d and %d cover similar topics with %s sentiment.",
			i+1, j+1, a.Polarity)
		impact = fmt.Sprintf("The articles reinforce each other's %s outlook.", a.Polarity)
	}

	return models.CoverageDifference{Comparison: comparison, Impact: impact}
}

// uniqueTopics returns the sorted topics exclusive to each side.
func uniqueTopics(a, b []string) (onlyA, onlyB []string) {
	inA := make(map[string]bool, len(a))
	inB := make(map[string]bool, len(b))
	for _, t := range a {
		inA[canonicalTopic(t)] = true
	}
	for _, t := range b {
		inB[canonicalTopic(t)] = true
	}
	for t := range inA {
		if !inB[t] {
			onlyA = append(onlyA, t)
		}
	}
	for t := range inB {
		if !inA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	return onlyA, onlyB
}

// verdict maps the sentiment distribution to the overall call. A tie
// between positive and negative is reported as mixed rather than leaning
// either way.
func verdict(counts models.PolarityCounts) models.Verdict {
	total := counts.Total()
	if total == 0 {
		return models.VerdictInsufficientData
	}

	posShare := float64(counts.Positive) / float64(total)
	negShare := float64(counts.Negative) / float64(total)

	switch {
	case posShare > dominantShare:
		return models.VerdictStronglyPositive
	case negShare > dominantShare:
		return models.VerdictStronglyNegative
	case counts.Positive > counts.Negative:
		return models.VerdictMildlyPositive
	case counts.Negative > counts.Positive:
		return models.VerdictMildlyNegative
	default:
		return models.VerdictMixed
	}
}

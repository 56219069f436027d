package sentiment

import "sort"

// Weighted keyword lexicons (lowercase). Multi-word entries are matched as
// substrings of the lowercased text, so "beats estimate" scores even when
// inflected text surrounds it.

var positiveWords = map[string]float64{
	"growth": 0.4, "profit": 0.4, "surge": 0.7, "rally": 0.6,
	"record high": 0.7, "all-time high": 0.7, "beat": 0.5,
	"beats estimate": 0.6, "exceeds": 0.5, "strong": 0.4,
	"upbeat": 0.5, "positive": 0.4, "upgrade": 0.6, "outperform": 0.6,
	"expansion": 0.4, "recovery": 0.5, "breakout": 0.6,
	"dividend": 0.4, "innovative": 0.4, "breakthrough": 0.6,
	"partnership": 0.3, "milestone": 0.4, "award": 0.4,
	"launch": 0.3, "success": 0.5, "gain": 0.4, "soar": 0.7,
	"optimistic": 0.5, "momentum": 0.3, "robust": 0.4,
}

var negativeWords = map[string]float64{
	"loss": 0.4, "decline": 0.5, "crash": 0.8, "plunge": 0.7,
	"slump": 0.6, "negative": 0.4, "downgrade": 0.6,
	"underperform": 0.6, "weak": 0.4, "selloff": 0.7, "fall": 0.4,
	"lawsuit": 0.6, "fraud": 0.8, "scam": 0.8, "investigation": 0.5,
	"probe": 0.5, "layoff": 0.6, "cut": 0.3, "miss": 0.5,
	"warning": 0.5, "concern": 0.3, "default": 0.7, "recall": 0.5,
	"penalty": 0.5, "fine": 0.4, "scandal": 0.7, "bankruptcy": 0.8,
	"downturn": 0.5, "struggles": 0.5, "disappointing": 0.6,
}

// Sorted key lists give the scorer a fixed match order, keeping float
// accumulation bit-identical across runs.
var (
	positiveKeys = sortedKeys(positiveWords)
	negativeKeys = sortedKeys(negativeWords)
)

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package utils

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultMaxFragments  = 3
	defaultMinSentence   = 50
	defaultMaxFragmentCh = 150
)

// SummaryFragments builds a short summary from the leading sentences of an
// article body. Sentences shorter than minSentence characters are skipped;
// fragments are packed up to maxLen characters each, at most maxFragments
// of them. Returns nil for empty input.
func SummaryFragments(text string, maxFragments, minSentence, maxLen int) []string {
	if maxFragments <= 0 {
		maxFragments = defaultMaxFragments
	}
	if minSentence <= 0 {
		minSentence = defaultMinSentence
	}
	if maxLen <= 0 {
		maxLen = defaultMaxFragmentCh
	}

	var sentences []string
	for _, s := range SplitSentences(text) {
		if len(s) >= minSentence {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	var fragments []string
	current := ""
	for _, s := range sentences {
		if len(fragments) >= maxFragments {
			break
		}
		switch {
		case current == "":
			current = s
		case len(current)+1+len(s) <= maxLen:
			current += " " + s
		default:
			fragments = append(fragments, current)
			current = s
		}
	}
	if current != "" && len(fragments) < maxFragments {
		fragments = append(fragments, Truncate(current, maxLen))
	}

	return fragments
}

// Truncate shortens s to at most max bytes and appends "...". The cut
// backs up to a rune boundary so the result is always valid UTF-8.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Summary joins the default fragment selection into a single string.
func Summary(text string) string {
	return strings.Join(SummaryFragments(text, 0, 0, 0), " ")
}

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace. Good enough for summary packing; not a linguistic tokenizer.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Consume trailing punctuation runs ("...", "?!").
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?') {
			end++
		}
		if end >= len(runes) || isSpaceRune(runes[end]) {
			if s := strings.TrimSpace(string(runes[start:end])); s != "" {
				out = append(out, s)
			}
			start = end
			i = end - 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

package narration

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/newsvani/newsvani/pkg/models"
)

// Hindi verdict phrases keyed by the report verdict.
var hindiVerdicts = map[models.Verdict]string{
	models.VerdictStronglyPositive: "समाचार कवरेज मुख्य रूप से सकारात्मक है। अनुकूल दृष्टिकोण का संकेत मिलता है।",
	models.VerdictMildlyPositive:   "समाचार कवरेज नकारात्मक से थोड़ा अधिक सकारात्मक है। मध्यम रूप से अनुकूल दृष्टिकोण।",
	models.VerdictStronglyNegative: "समाचार कवरेज मुख्य रूप से नकारात्मक है। सावधानी की सलाह दी जाती है।",
	models.VerdictMildlyNegative:   "समाचार कवरेज सकारात्मक से थोड़ा अधिक नकारात्मक है। कुछ चिंताएँ मौजूद हैं।",
	models.VerdictMixed:            "समाचार कवरेज सकारात्मक और नकारात्मक भावनाओं के बीच संतुलित है। मिश्रित दृष्टिकोण।",
}

// scriptInsufficient is spoken when a run found no articles.
const scriptInsufficient = "के लिए कोई समाचार लेख नहीं मिला। कृपया बाद में पुनः प्रयास करें।"

// BuildScript composes the Hindi narration text for a completed report:
// article count, sentiment distribution, and the overall verdict.
func BuildScript(report models.ComparativeReport) string {
	company := report.Company
	if company == "" {
		company = "कंपनी"
	}

	if report.Verdict == models.VerdictInsufficientData {
		return fmt.Sprintf("%s %s", company, scriptInsufficient)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s के समाचार विश्लेषण के परिणाम। ", company)
	fmt.Fprintf(&b, "हमने %d समाचार लेख पाए। ", report.Counts.Total())
	fmt.Fprintf(&b, "इनमें से %d सकारात्मक, %d नकारात्मक, और %d तटस्थ हैं। ",
		report.Counts.Positive, report.Counts.Negative, report.Counts.Neutral)

	if phrase, ok := hindiVerdicts[report.Verdict]; ok {
		b.WriteString(phrase)
	}

	return strings.TrimSpace(b.String())
}

// ChunkScript splits a narration script into pieces no longer than maxLen
// characters, breaking at danda ('।') sentence boundaries. TTS endpoints
// reject over-long inputs. The budget counts runes, not bytes: Devanagari
// runs three bytes per character, and the endpoint limit is in characters.
func ChunkScript(script string, maxLen int) []string {
	if maxLen <= 0 || utf8.RuneCountInString(script) <= maxLen {
		if script == "" {
			return nil
		}
		return []string{script}
	}

	sentences := strings.SplitAfter(script, "।")
	var chunks []string
	current := ""
	currentLen := 0
	for _, s := range sentences {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			continue
		}
		n := utf8.RuneCountInString(s)
		switch {
		case current == "":
			current, currentLen = s, n
		case currentLen+1+n <= maxLen:
			current += " " + s
			currentLen += 1 + n
		default:
			chunks = append(chunks, strings.TrimSpace(current))
			current, currentLen = s, n
		}
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}

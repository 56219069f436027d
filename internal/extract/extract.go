// Package extract turns raw fetched documents into clean ArticleRecords.
// HTML pages go through readability; pre-cleaned RSS text passes straight
// through. Documents without a usable article body are skipped, never fatal.
package extract

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/newsvani/newsvani/pkg/models"
	"github.com/newsvani/newsvani/pkg/utils"
)

// minBodyLen is the shortest body accepted as an article. Anything below
// is boilerplate (cookie banners, link farms) rather than content.
const minBodyLen = 40

var redundantNewlines = regexp.MustCompile(`\n{3,}`)

// Extractor produces ArticleRecords from RawDocuments.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract converts one raw document into an ArticleRecord. ok is false
// when the document holds no extractable article body; such documents are
// skipped by the pipeline and never reach the scorer.
func (e *Extractor) Extract(doc models.RawDocument) (models.ArticleRecord, bool) {
	title := strings.TrimSpace(doc.Title)
	body := doc.Body

	if doc.IsHTML {
		pageURL, _ := url.Parse(doc.URL)
		article, err := readability.FromReader(strings.NewReader(doc.Body), pageURL)
		if err != nil {
			slog.Debug("readability failed, skipping document", "url", doc.URL, "err", err)
			return models.ArticleRecord{}, false
		}
		body = article.TextContent
		if title == "" {
			title = strings.TrimSpace(article.Title)
		}
	}

	body = cleanupText(body)
	if len(body) < minBodyLen {
		return models.ArticleRecord{}, false
	}
	if title == "" {
		// Fall back to the first sentence as a title of last resort.
		if sentences := utils.SplitSentences(body); len(sentences) > 0 {
			title = sentences[0]
		}
	}

	summary := utils.Summary(body)
	if summary == "" {
		summary = utils.Truncate(body, 200)
	}

	return models.ArticleRecord{
		Source:      doc.Source,
		Title:       title,
		Body:        body,
		Summary:     summary,
		URL:         doc.URL,
		PublishedAt: doc.PublishedAt,
	}, true
}

// ExtractAll runs Extract over a document batch, dropping the skips.
func (e *Extractor) ExtractAll(docs []models.RawDocument) []models.ArticleRecord {
	records := make([]models.ArticleRecord, 0, len(docs))
	for _, doc := range docs {
		if rec, ok := e.Extract(doc); ok {
			records = append(records, rec)
		}
	}
	return records
}

// cleanupText normalizes whitespace: collapses runs of blank lines and
// trims the result.
func cleanupText(text string) string {
	text = redundantNewlines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

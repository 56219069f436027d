package datasource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"github.com/newsvani/newsvani/pkg/models"
)

// Feed is one configured RSS/Atom feed.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds lists the business-news feeds queried when no custom
// configuration is supplied.
var DefaultFeeds = []Feed{
	{Name: "Moneycontrol", URL: "https://www.moneycontrol.com/rss/business.xml"},
	{Name: "Economic Times", URL: "https://economictimes.indiatimes.com/rssfeedstopstories.cms"},
	{Name: "LiveMint", URL: "https://www.livemint.com/rss/companies"},
	{Name: "Business Standard", URL: "https://www.business-standard.com/rss/companies-101.rss"},
}

// RSSSource fetches candidate articles from a set of RSS feeds and keeps
// the items that mention the company.
type RSSSource struct {
	feeds   []Feed
	cache   *Cache
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewRSSSource creates an RSS source over the default feeds.
func NewRSSSource() *RSSSource {
	return NewRSSSourceWithFeeds(DefaultFeeds)
}

// NewRSSSourceWithFeeds creates an RSS source over custom feeds.
func NewRSSSourceWithFeeds(feeds []Feed) *RSSSource {
	p := gofeed.NewParser()
	p.UserAgent = DefaultUserAgent
	return &RSSSource{
		feeds:   feeds,
		cache:   NewCache(10 * time.Minute),
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
		parser:  p,
	}
}

// Name returns the source name.
func (s *RSSSource) Name() string { return "RSS" }

// FetchCompanyNews parses every configured feed and returns items whose
// title or description mentions the company. A failing feed is skipped;
// the error is only returned when every feed fails.
func (s *RSSSource) FetchCompanyNews(ctx context.Context, company string, limit int) ([]models.RawDocument, error) {
	needles := companyNeedles(company)

	var docs []models.RawDocument
	var lastErr error
	failed := 0

	for _, feed := range s.feeds {
		items, err := s.fetchFeed(ctx, feed)
		if err != nil {
			lastErr = err
			failed++
			continue
		}
		for _, doc := range items {
			if matchesAny(doc.Title+" "+doc.Body, needles) {
				docs = append(docs, doc)
			}
		}
	}

	if failed == len(s.feeds) && lastErr != nil {
		return nil, fmt.Errorf("all %d feeds failed: %w", failed, lastErr)
	}

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// fetchFeed parses a single feed, with per-feed caching.
func (s *RSSSource) fetchFeed(ctx context.Context, feed Feed) ([]models.RawDocument, error) {
	cacheKey := "rss:" + feed.URL
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.RawDocument), nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	parsed, err := s.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", feed.Name, err)
	}

	docs := lo.Map(parsed.Items, func(item *gofeed.Item, _ int) models.RawDocument {
		doc := models.RawDocument{
			Source: feed.Name,
			URL:    item.Link,
			Title:  strings.TrimSpace(item.Title),
			Body:   StripHTML(itemText(item)),
		}
		if item.PublishedParsed != nil {
			doc.PublishedAt = *item.PublishedParsed
		}
		return doc
	})

	s.cache.Set(cacheKey, docs)
	return docs, nil
}

// itemText returns the richest text an item carries. Content (full body)
// is preferred over Description (short excerpt).
func itemText(item *gofeed.Item) string {
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	return strings.TrimSpace(item.Description)
}

// StripHTML removes markup from a string using goquery.
func StripHTML(s string) string {
	if s == "" || !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// companyNeedles returns the lowercase strings used to match a company in
// item text: the full name plus, for multi-word names, the leading word
// ("Reliance Industries" also matches "Reliance").
func companyNeedles(company string) []string {
	full := strings.ToLower(strings.TrimSpace(company))
	if full == "" {
		return nil
	}
	needles := []string{full}
	if fields := strings.Fields(full); len(fields) > 1 && len(fields[0]) >= 4 {
		needles = append(needles, fields[0])
	}
	return needles
}

// matchesAny reports whether text contains any needle, case-insensitively.
func matchesAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

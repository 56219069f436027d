package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/newsvani/newsvani/pkg/models"
)

// WebSearchConfig configures the web-search source.
type WebSearchConfig struct {
	// SearchURL is a Google Custom Search-compatible endpoint.
	SearchURL string
	// APIKey and EngineID authenticate against the search endpoint.
	APIKey   string
	EngineID string
	// FallbackDomains are news sites queried one by one through the
	// DuckDuckGo HTML fallback when the search API is unavailable.
	FallbackDomains []string
	// FallbackSearchURL is the DuckDuckGo HTML endpoint.
	FallbackSearchURL string
	// MaxPageBytes caps how much of an article page is downloaded.
	MaxPageBytes int64
}

// DefaultWebSearchConfig returns the stock configuration. The API key must
// still be supplied via config before the primary search works; without it
// the source goes straight to the fallback.
func DefaultWebSearchConfig() WebSearchConfig {
	return WebSearchConfig{
		SearchURL:         "https://www.googleapis.com/customsearch/v1",
		FallbackSearchURL: "https://duckduckgo.com/html/",
		FallbackDomains: []string{
			"reuters.com",
			"cnbc.com",
			"forbes.com",
			"businessinsider.com",
			"marketwatch.com",
			"techcrunch.com",
		},
		MaxPageBytes: 2 << 20, // 2 MiB per page
	}
}

// WebSearch discovers article URLs through a search API (with an HTML
// search-results fallback) and downloads each page for extraction.
type WebSearch struct {
	cfg     WebSearchConfig
	limiter *RateLimiter
}

// NewWebSearch creates a web-search source.
func NewWebSearch(cfg WebSearchConfig) *WebSearch {
	if cfg.MaxPageBytes <= 0 {
		cfg.MaxPageBytes = DefaultWebSearchConfig().MaxPageBytes
	}
	return &WebSearch{
		cfg:     cfg,
		limiter: NewRateLimiter(1, time.Second),
	}
}

// Name returns the source name.
func (w *WebSearch) Name() string { return "Web Search" }

// FetchCompanyNews finds article URLs for the company and downloads the
// pages. Individual page failures are skipped.
func (w *WebSearch) FetchCompanyNews(ctx context.Context, company string, limit int) ([]models.RawDocument, error) {
	urls, err := w.searchURLs(ctx, company, limit)
	if err != nil {
		// Primary search failed; try scraping search results directly.
		urls, err = w.fallbackURLs(ctx, company, limit)
		if err != nil {
			return nil, err
		}
	}

	var docs []models.RawDocument
	for _, u := range urls {
		if limit > 0 && len(docs) >= limit {
			break
		}
		page, err := w.downloadPage(ctx, u)
		if err != nil {
			continue
		}
		docs = append(docs, models.RawDocument{
			Source: "Web Search",
			URL:    u,
			Body:   page,
			IsHTML: true,
		})
	}
	return docs, nil
}

// searchResponse is the subset of the Custom Search JSON answer we read.
type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// searchURLs queries the search API for news article URLs.
func (w *WebSearch) searchURLs(ctx context.Context, company string, limit int) ([]string, error) {
	if w.cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key not configured")
	}
	if limit <= 0 || limit > 10 {
		limit = 10 // Custom Search caps num at 10
	}

	q := url.Values{}
	q.Set("key", w.cfg.APIKey)
	q.Set("cx", w.cfg.EngineID)
	q.Set("q", company+" news")
	q.Set("num", fmt.Sprint(limit))

	if err := w.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := doGet(ctx, w.cfg.SearchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer body.Close()

	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	urls := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}
	if len(urls) == 0 {
		return nil, ErrNoResults
	}
	return urls, nil
}

// fallbackURLs scrapes DuckDuckGo HTML results per configured news domain,
// taking up to three hits from each.
func (w *WebSearch) fallbackURLs(ctx context.Context, company string, limit int) ([]string, error) {
	seen := map[string]bool{}
	var urls []string

	for _, domain := range w.cfg.FallbackDomains {
		if limit > 0 && len(urls) >= limit {
			break
		}

		q := url.Values{}
		q.Set("q", company+" site:"+domain)

		if err := w.limiter.Wait(ctx); err != nil {
			return urls, err
		}
		body, _, err := doGet(ctx, w.cfg.FallbackSearchURL+"?"+q.Encode(), nil)
		if err != nil {
			continue
		}

		doc, err := goquery.NewDocumentFromReader(body)
		body.Close()
		if err != nil {
			continue
		}

		perDomain := 0
		doc.Find(".result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok {
				return true
			}
			actual := resolveRedirect(href)
			if actual == "" || !strings.Contains(actual, domain) || seen[actual] {
				return true
			}
			seen[actual] = true
			urls = append(urls, actual)
			perDomain++
			return perDomain < 3
		})
	}

	if len(urls) == 0 {
		return nil, ErrNoResults
	}
	return urls, nil
}

// resolveRedirect unwraps DuckDuckGo's uddg redirect parameter; plain URLs
// pass through unchanged.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}

// downloadPage fetches an article page, capped at MaxPageBytes.
func (w *WebSearch) downloadPage(ctx context.Context, pageURL string) (string, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return "", err
	}
	body, _, err := doGet(ctx, pageURL, map[string]string{"Accept": "text/html"})
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, w.cfg.MaxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read page %s: %w", pageURL, err)
	}
	return string(data), nil
}

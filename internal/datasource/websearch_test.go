package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebSearchFetchCompanyNews(t *testing.T) {
	mux := http.NewServeMux()
	var pageHits int

	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/customsearch/v1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			http.Error(w, "missing key", http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `{"items":[{"link":"%s/article/1"},{"link":"%s/article/2"}]}`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/article/", func(w http.ResponseWriter, r *http.Request) {
		pageHits++
		fmt.Fprint(w, "<html><body><article><h1>Company news</h1><p>Body text.</p></article></body></html>")
	})

	cfg := DefaultWebSearchConfig()
	cfg.SearchURL = srv.URL + "/customsearch/v1"
	cfg.APIKey = "test-key"
	cfg.EngineID = "test-cx"

	ws := NewWebSearch(cfg)
	docs, err := ws.FetchCompanyNews(context.Background(), "Acme Corp", 0)
	if err != nil {
		t.Fatalf("FetchCompanyNews: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if pageHits != 2 {
		t.Errorf("expected 2 page downloads, got %d", pageHits)
	}
	for _, d := range docs {
		if !d.IsHTML {
			t.Error("expected HTML documents from web search")
		}
		if !strings.Contains(d.Body, "Body text.") {
			t.Errorf("page body not captured: %q", d.Body)
		}
	}
}

func TestWebSearchFallback(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// Primary search always fails.
	mux.HandleFunc("/customsearch/v1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	// DuckDuckGo-style HTML results page.
	mux.HandleFunc("/html/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
<a class="result__a" href="/l/?uddg=%s%%2Fstory%%2F1&rut=x">Result</a>
</body></html>`, strings.ReplaceAll(srv.URL, "/", "%2F"))
	})
	mux.HandleFunc("/story/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Fallback article body.</p></body></html>")
	})

	cfg := DefaultWebSearchConfig()
	cfg.SearchURL = srv.URL + "/customsearch/v1"
	cfg.APIKey = "test-key"
	cfg.FallbackSearchURL = srv.URL + "/html/"
	cfg.FallbackDomains = []string{"127.0.0.1"}

	ws := NewWebSearch(cfg)
	docs, err := ws.FetchCompanyNews(context.Background(), "Acme Corp", 0)
	if err != nil {
		t.Fatalf("FetchCompanyNews: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 fallback document, got %d", len(docs))
	}
	if !strings.Contains(docs[0].Body, "Fallback article body.") {
		t.Errorf("fallback body not captured: %q", docs[0].Body)
	}
}

func TestWebSearchNoKeyNoFallbackResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no results</body></html>")
	}))
	defer srv.Close()

	cfg := DefaultWebSearchConfig()
	cfg.APIKey = "" // primary disabled
	cfg.FallbackSearchURL = srv.URL
	cfg.FallbackDomains = []string{"example.com"}

	ws := NewWebSearch(cfg)
	if _, err := ws.FetchCompanyNews(context.Background(), "Acme", 0); err == nil {
		t.Error("expected ErrNoResults when nothing is found anywhere")
	}
}

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"uddg redirect", "/l/?uddg=https%3A%2F%2Fexample.com%2Fa&rut=abc", "https://example.com/a"},
		{"plain https", "https://example.com/b", "https://example.com/b"},
		{"relative without uddg", "/l/?rut=abc", ""},
		{"garbage", "::::", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveRedirect(tt.in); got != tt.want {
				t.Errorf("resolveRedirect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

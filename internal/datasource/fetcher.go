package datasource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/newsvani/newsvani/pkg/models"
)

// FetchResult carries everything a run's fetch phase produced: the raw
// documents from every source that answered, and the failures that were
// skipped along the way.
type FetchResult struct {
	Documents []models.RawDocument
	Errors    []models.SourceError
}

// Fetcher fans a company query out across all registered sources
// concurrently. One slow or broken source never aborts the run; its error
// is recorded and the remaining sources' documents are kept.
type Fetcher struct {
	sources       []Source
	perSourceWait time.Duration
	perSourceMax  int
}

// NewFetcher creates a fetcher over the given sources. perSourceWait bounds
// how long any single source may take; perSourceMax caps documents taken
// from one source (<= 0 for no cap).
func NewFetcher(sources []Source, perSourceWait time.Duration, perSourceMax int) *Fetcher {
	if perSourceWait <= 0 {
		perSourceWait = 30 * time.Second
	}
	return &Fetcher{
		sources:       sources,
		perSourceWait: perSourceWait,
		perSourceMax:  perSourceMax,
	}
}

// Sources returns the registered sources.
func (f *Fetcher) Sources() []Source { return f.sources }

// Fetch queries every source concurrently and merges the results. Each
// source writes into its own slot, so no locking is needed for the
// document slices; ordering across sources follows registration order,
// not completion order. An empty result with no errors is a valid outcome.
func (f *Fetcher) Fetch(ctx context.Context, company string) FetchResult {
	slots := make([][]models.RawDocument, len(f.sources))

	var mu sync.Mutex
	var srcErrs []models.SourceError

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range f.sources {
		i, src := i, src
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, f.perSourceWait)
			defer cancel()

			docs, err := src.FetchCompanyNews(sctx, company, f.perSourceMax)
			if err != nil {
				slog.Warn("source failed, skipping",
					"source", src.Name(), "company", company, "err", err)
				mu.Lock()
				srcErrs = append(srcErrs, models.SourceError{
					Source: src.Name(),
					Err:    err.Error(),
				})
				mu.Unlock()
				return nil // non-fatal
			}
			slots[i] = docs
			return nil
		})
	}
	_ = g.Wait() // workers only return nil; errors land in srcErrs

	var all []models.RawDocument
	seen := map[string]bool{}
	for _, docs := range slots {
		for _, d := range docs {
			if d.URL != "" && seen[d.URL] {
				continue
			}
			if d.URL != "" {
				seen[d.URL] = true
			}
			all = append(all, d)
		}
	}

	slog.Info("fetch complete",
		"company", company, "documents", len(all), "failed_sources", len(srcErrs))

	return FetchResult{Documents: all, Errors: srcErrs}
}

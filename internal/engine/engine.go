// Package engine wires the pipeline stages together: fetch, extract,
// score, aggregate, render. One Analyze call is one complete run for one
// company.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/newsvani/newsvani/internal/analysis/compare"
	"github.com/newsvani/newsvani/internal/analysis/sentiment"
	"github.com/newsvani/newsvani/internal/datasource"
	"github.com/newsvani/newsvani/internal/extract"
	"github.com/newsvani/newsvani/internal/narration"
	"github.com/newsvani/newsvani/internal/report"
	"github.com/newsvani/newsvani/pkg/models"
	"github.com/newsvani/newsvani/pkg/utils"
)

// ErrInvalidCompany is returned when the company name is empty after
// sanitization.
var ErrInvalidCompany = errors.New("invalid company name")

// Engine runs company analyses and narrations. Completed runs are cached
// by normalized company name, so repeated requests inside the TTL window
// do not hit the news sources again.
type Engine struct {
	fetcher   *datasource.Fetcher
	extractor *extract.Extractor
	narrator  *narration.Client
	cache     *datasource.Cache
}

// New creates an engine. cacheTTL bounds how long a completed run is
// served from cache; <= 0 disables caching.
func New(fetcher *datasource.Fetcher, narrator *narration.Client, cacheTTL time.Duration) *Engine {
	var cache *datasource.Cache
	if cacheTTL > 0 {
		cache = datasource.NewCache(cacheTTL)
	}
	return &Engine{
		fetcher:   fetcher,
		extractor: extract.New(),
		narrator:  narrator,
		cache:     cache,
	}
}

// Sources returns the names of the registered news sources.
func (e *Engine) Sources() []string {
	srcs := e.fetcher.Sources()
	names := make([]string, 0, len(srcs))
	for _, s := range srcs {
		names = append(names, s.Name())
	}
	return names
}

// Analyze runs the full pipeline for one company and returns the
// completed run. Finding no articles is a valid outcome, not an error;
// the report carries an "insufficient data" verdict instead.
func (e *Engine) Analyze(ctx context.Context, company string) (models.RunResult, error) {
	name := utils.SanitizeCompanyName(company)
	if name == "" {
		return models.RunResult{}, fmt.Errorf("%w: %q", ErrInvalidCompany, company)
	}

	key := utils.CompanyCacheKey(name)
	if e.cache != nil {
		if cached, ok := e.cache.Get(key); ok {
			slog.Debug("serving cached run", "company", name)
			return cached.(models.RunResult), nil
		}
	}

	start := time.Now()
	fetched := e.fetcher.Fetch(ctx, name)
	articles := e.extractor.ExtractAll(fetched.Documents)
	scored := sentiment.ScoreAll(articles)
	agg := compare.Build(name, scored)

	run := models.RunResult{
		Company:      name,
		Articles:     scored,
		Report:       agg,
		SourceErrors: fetched.Errors,
		FetchedAt:    start,
	}

	rendered, err := report.Render(run)
	if err != nil {
		return models.RunResult{}, fmt.Errorf("analyze %q: %w", name, err)
	}
	run.Rendered = rendered

	slog.Info("analysis complete",
		"company", name,
		"articles", len(scored),
		"verdict", agg.Verdict,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if e.cache != nil {
		e.cache.Set(key, run)
	}
	return run, nil
}

// Narrate runs the analysis (or reuses a cached run) and speaks its
// outcome in Hindi. When the run found no articles, narration is skipped
// and nil audio is returned without error. A narration failure leaves the
// report itself intact: callers can still Analyze successfully after
// Narrate fails.
func (e *Engine) Narrate(ctx context.Context, company string) ([]byte, error) {
	run, err := e.Analyze(ctx, company)
	if err != nil {
		return nil, err
	}

	if run.Report.Verdict == models.VerdictInsufficientData {
		slog.Info("no articles found, skipping narration", "company", run.Company)
		return nil, nil
	}

	script := narration.BuildScript(run.Report)
	audio, err := e.narrator.Narrate(ctx, script)
	if err != nil {
		slog.Warn("narration failed", "company", run.Company, "err", err)
		return nil, err
	}
	return audio, nil
}

// InvalidateCache drops the cached run for one company, if present.
func (e *Engine) InvalidateCache(company string) {
	if e.cache == nil {
		return
	}
	e.cache.Invalidate(utils.CompanyCacheKey(company))
}

package feature

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/featureconfig/pkg/async"
	"github.com/dmitrymomot/featureconfig/pkg/logger"
)

// Provider holds the evaluations fetched for this process and answers queries from them.
// Reads never block: fetches build a new snapshot and swap it in atomically.
// It is safe for concurrent use.
type Provider struct {
	fetcher  Fetcher
	logger   *slog.Logger
	snapshot atomic.Pointer[map[Name]Evaluation]
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for fetch diagnostics. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProvider creates a provider that loads evaluations through fetcher.
// The cache starts empty; call FetchFeatureConfigs to populate it.
func NewProvider(fetcher Fetcher, opts ...Option) *Provider {
	p := &Provider{
		fetcher: fetcher,
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("feature"))
	return p
}

// FetchFeatureConfigs fetches evaluations once and replaces the cache with the known ones.
// On failure the previous cache stays in place and the error wraps ErrFetchFailed.
func (p *Provider) FetchFeatureConfigs(ctx context.Context) error {
	if p == nil || p.fetcher == nil {
		return ErrProviderNotInitialized
	}

	start := time.Now()
	raw, err := p.fetcher.FetchEvaluations(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to fetch feature evaluations", logger.Error(err))
		return errors.Join(ErrFetchFailed, err)
	}

	staged, ignored, err := p.stage(ctx, raw)
	if err != nil {
		p.logger.WarnContext(ctx, "rejected feature evaluations", logger.Error(err))
		return errors.Join(ErrFetchFailed, err)
	}

	p.snapshot.Store(&staged)

	p.logger.DebugContext(ctx, "feature evaluations fetched",
		logger.Count(len(staged)),
		logger.Ignored(ignored),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// stage converts raw records into a new cache, dropping unknown features.
// A later record for the same feature replaces an earlier one.
func (p *Provider) stage(ctx context.Context, raw []RawEvaluation) (map[Name]Evaluation, int, error) {
	staged := make(map[Name]Evaluation, len(raw))
	ignored := 0
	for _, r := range raw {
		def, ok := LookupRemote(r.Feature)
		if !ok {
			ignored++
			p.logger.DebugContext(ctx, "ignoring unknown feature", logger.Feature(r.Feature))
			continue
		}
		if r.Variation == "" {
			return nil, 0, errors.Join(ErrInvalidEvaluation, fmt.Errorf("feature %q has no variation", r.Feature))
		}
		staged[def.ID] = Evaluation{
			Name:      def.Name,
			Variation: r.Variation,
			Value:     r.Value.clone(),
		}
	}
	for id, e := range staged {
		p.logger.DebugContext(ctx, "feature evaluation staged", logger.Feature(string(id)), logger.Variation(e.Variation))
	}
	return staged, ignored, nil
}

// FetchAsync runs FetchFeatureConfigs in the background.
// The future resolves to the number of cached features.
func (p *Provider) FetchAsync(ctx context.Context) *async.Future[int] {
	return async.Go(ctx, func(ctx context.Context) (int, error) {
		if err := p.FetchFeatureConfigs(ctx); err != nil {
			return 0, err
		}
		return len(p.load()), nil
	})
}

// Refresh re-fetches evaluations every interval until ctx is done.
// Failed fetches are logged and keep the previous cache.
func (p *Provider) Refresh(ctx context.Context, interval time.Duration) error {
	if p == nil || p.fetcher == nil {
		return ErrProviderNotInitialized
	}
	if interval <= 0 {
		return fmt.Errorf("feature: refresh interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Errors are already logged and the previous snapshot stays authoritative.
			_ = p.FetchFeatureConfigs(ctx)
		}
	}
}

// Close drops cached evaluations and closes the fetcher if it holds resources.
func (p *Provider) Close() error {
	if p == nil {
		return nil
	}
	p.snapshot.Store(nil)
	if c, ok := p.fetcher.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Provider) load() map[Name]Evaluation {
	if p == nil {
		return nil
	}
	if m := p.snapshot.Load(); m != nil {
		return *m
	}
	return nil
}

// GetFeatureConfigs returns a copy of every cached evaluation keyed by feature identifier.
func (p *Provider) GetFeatureConfigs() map[Name]Evaluation {
	cached := p.load()
	out := make(map[Name]Evaluation, len(cached))
	for id, e := range cached {
		out[id] = e.clone()
	}
	return out
}

// GetFeature returns the cached evaluation for id.
// It reports false when id is unknown or wasn't part of the last fetch.
func (p *Provider) GetFeature(id string) (Evaluation, bool) {
	e, ok := p.load()[Name(id)]
	if !ok {
		return Evaluation{}, false
	}
	return e.clone(), true
}

// IsEnabled reports whether id was fetched with the TREATMENT variation.
// Any other variation, a missing evaluation or an unknown id yields false.
func (p *Provider) IsEnabled(id string) bool {
	e, ok := p.load()[Name(id)]
	return ok && e.Variation == VariationTreatment
}

// Value returns the cached value for id, falling back to the registry default.
func (p *Provider) Value(id string) (Value, bool) {
	if e, ok := p.load()[Name(id)]; ok {
		return e.Value.clone(), true
	}
	if def, ok := Lookup(id); ok && def.Default != nil {
		return def.Default.Value, true
	}
	return Value{}, false
}

// variation returns the cached variation for id, falling back to the registry default.
func (p *Provider) variation(id Name) string {
	if e, ok := p.load()[id]; ok {
		return e.Variation
	}
	if def, ok := Lookup(string(id)); ok && def.Default != nil {
		return def.Default.Variation
	}
	return ""
}

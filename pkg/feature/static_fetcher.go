package feature

import (
	"context"
	"slices"
	"sync"
)

// StaticFetcher serves a fixed set of evaluations.
// It's useful for tests and for running without a backend.
type StaticFetcher struct {
	mu          sync.RWMutex
	evaluations []RawEvaluation
	err         error
}

// NewStaticFetcher creates a fetcher that returns the given evaluations.
func NewStaticFetcher(evaluations ...RawEvaluation) *StaticFetcher {
	return &StaticFetcher{evaluations: slices.Clone(evaluations)}
}

// Set replaces the evaluations served by subsequent fetches and clears any failure.
func (s *StaticFetcher) Set(evaluations ...RawEvaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations = slices.Clone(evaluations)
	s.err = nil
}

// Fail makes subsequent fetches return err until Set is called.
func (s *StaticFetcher) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// FetchEvaluations returns a copy of the configured evaluations.
func (s *StaticFetcher) FetchEvaluations(ctx context.Context) ([]RawEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.evaluations), nil
}

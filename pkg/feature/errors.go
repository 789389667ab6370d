package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrFetchFailed indicates that evaluations could not be fetched; the cache is left untouched.
	ErrFetchFailed = errors.New("feature evaluations fetch failed")

	// ErrInvalidEvaluation indicates that the backend returned a malformed evaluation for a known feature.
	ErrInvalidEvaluation = errors.New("invalid feature evaluation")

	// ErrProviderNotInitialized indicates the provider has no fetcher configured.
	ErrProviderNotInitialized = errors.New("feature provider not initialized")

	// ErrNoProvider indicates the context carries no provider.
	ErrNoProvider = errors.New("no feature provider in context")

	// ErrIncompleteGetters indicates the getter table doesn't match the registry.
	ErrIncompleteGetters = errors.New("feature getters do not cover the registry")
)

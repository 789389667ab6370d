// Package feature provides a read-only feature configuration provider backed by
// evaluations computed by a remote experimentation backend.
//
// The backend decides which variation each client gets; this package only
// fetches those decisions, keeps them for the lifetime of the process and
// answers queries from memory. Bucketing and assignment never happen here.
//
// # Architecture
//
// The package is built around four pieces:
//
// 1. Registry - the fixed, ordered list of features the client understands
// 2. Fetcher - the capability that returns raw evaluations from the backend
// 3. Provider - the cache plus generic and per-feature accessors
// 4. Derivations - small pure rules such as GroupCode turning a variation into a value
//
// FetchFeatureConfigs calls the Fetcher once, drops evaluations for features the
// registry doesn't know, and swaps the result in as a new immutable snapshot.
// Readers load the current snapshot without locking, so they observe either the
// previous complete cache or the new one. A failed fetch leaves the previous
// snapshot in place.
//
// # Usage
//
//	import "github.com/dmitrymomot/featureconfig/pkg/feature"
//
//	provider := feature.NewProvider(fetcher, feature.WithLogger(log))
//	defer provider.Close()
//
//	if err := provider.FetchFeatureConfigs(ctx); err != nil {
//		// Cached values (if any) remain valid; callers typically log and continue.
//	}
//
//	if provider.IsEnabled(string(feature.FeatureB)) {
//		// Treatment path
//	}
//
//	group := provider.GetProjectContextGroup() // "control", "t1" or "t2"
//	log.Info("features", "config", provider.GetFeatureConfigsTelemetry())
//
// # Accessors
//
// No accessor returns an error. Unknown identifiers and missing evaluations
// resolve to zero values: IsEnabled returns false, GetFeature reports absence,
// and derived getters fall back to registry defaults. Only TREATMENT counts as
// enabled.
//
// Every registered feature has a getter named "Get" plus the capitalized
// identifier (GetFeatureA, GetProjectContextGroup, ...). The package panics at
// init if the getter table and the registry disagree, so adding a feature
// without its getter can't ship.
//
// # Sharing a Provider
//
// There is no package-level instance. Construct one provider per process and
// pass it explicitly, or store it with WithContext and read it with FromContext.
//
// # Error Handling
//
//	if err := provider.FetchFeatureConfigs(ctx); errors.Is(err, feature.ErrFetchFailed) {
//		// Backend unavailable or returned a malformed evaluation
//	}
package feature

// Package evalsource provides feature.Fetcher implementations that retrieve
// evaluations computed by the experimentation backend.
//
// Available sources:
//
//   - HTTPFetcher - POSTs the client id to the evaluation service
//   - S3Fetcher - reads a published evaluation document from S3 or an S3-compatible store
//   - RedisFetcher - reads a hash the backend keeps up to date in Redis
//   - FileFetcher - reads a local YAML/JSON document for development
//
// Each source performs exactly one attempt per fetch; retry policy belongs to
// the caller (see feature.Provider.Refresh).
//
// # Usage
//
//	var cfg evalsource.Config
//	config.MustLoad(&cfg, config.WithPrefix("FEATURE_"))
//
//	fetcher, err := evalsource.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	provider := feature.NewProvider(fetcher)
//	defer provider.Close()
//
// # Error Handling
//
// Errors are joined with package sentinels:
//
//	if errors.Is(err, evalsource.ErrDocumentNotFound) {
//		// Nothing published yet
//	}
package evalsource

// Package logger provides a small factory around Go's slog package with
// functional options and helper attribute constructors used across the
// feature configuration packages.
//
// # Usage
//
//	import "github.com/dmitrymomot/featureconfig/pkg/logger"
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(logger.Component("featurectl")),
//	)
//	log.Info("feature evaluations fetched", logger.Count(4), logger.Duration(elapsed))
//
// Packages that take an optional *slog.Logger default to NewNop, which
// discards all records.
//
// # Error Handling
//
// Error produces an attribute only when the supplied error is non-nil,
// allowing calls like:
//
//	log.Warn("refresh failed", logger.Error(err))
//
// without an additional nil check.
package logger

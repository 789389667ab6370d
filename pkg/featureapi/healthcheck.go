package featureapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/featureconfig/pkg/logger"
)

// healthCheck serves both liveness and readiness probes.
//
//   - Without checks it returns 200 with body "ALIVE".
//   - With checks it runs each one against the request context and returns
//     200 "READY" when all pass, or 503 "NOT_READY" on the first failure.
func healthCheck(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}

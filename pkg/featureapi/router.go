package featureapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
	"github.com/dmitrymomot/featureconfig/pkg/logger"
)

// Option configures the router.
type Option func(*options)

type options struct {
	logger *slog.Logger
	checks []func(context.Context) error
}

// WithLogger sets the request logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReadinessCheck adds a dependency check to /healthz.
func WithReadinessCheck(fn func(context.Context) error) Option {
	return func(o *options) {
		if fn != nil {
			o.checks = append(o.checks, fn)
		}
	}
}

type handler struct {
	provider *feature.Provider
	logger   *slog.Logger
}

// Router returns the diagnostics routes for p.
func Router(p *feature.Provider, opts ...Option) chi.Router {
	o := &options{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger.With(logger.Component("featureapi"))
	h := &handler{provider: p, logger: log}

	r := chi.NewRouter()
	r.Use(requestID(log))

	r.Get("/", h.snapshot)
	r.Get("/telemetry", h.telemetry)
	r.Get("/healthz", healthCheck(log, o.checks...))
	r.Post("/refresh", h.refresh)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", h.feature)
		r.Get("/enabled", h.enabled)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type featureResponse struct {
	feature.Evaluation
	ID      feature.Name `json:"id"`
	Derived any          `json:"derived"`
}

type enabledResponse struct {
	Enabled bool `json:"enabled"`
}

type refreshResponse struct {
	Count int `json:"count"`
}

func (h *handler) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.provider.GetFeatureConfigs())
}

func (h *handler) telemetry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.provider.GetFeatureConfigsTelemetry()))
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.FetchFeatureConfigs(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "refresh failed", logger.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Count: len(h.provider.GetFeatureConfigs())})
}

func (h *handler) feature(w http.ResponseWriter, r *http.Request) {
	def, ok := feature.LookupRemote(chi.URLParam(r, "name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown feature"})
		return
	}
	e, ok := h.provider.GetFeature(string(def.ID))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "feature not evaluated"})
		return
	}
	derived, _ := h.provider.Derived(string(def.ID))
	writeJSON(w, http.StatusOK, featureResponse{Evaluation: e, ID: def.ID, Derived: derived})
}

func (h *handler) enabled(w http.ResponseWriter, r *http.Request) {
	def, ok := feature.LookupRemote(chi.URLParam(r, "name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown feature"})
		return
	}
	writeJSON(w, http.StatusOK, enabledResponse{Enabled: h.provider.IsEnabled(string(def.ID))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

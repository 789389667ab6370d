// Package featureapi exposes a feature.Provider over HTTP for diagnostics.
//
// The API is read-mostly: it reports what the provider has cached and lets an
// operator trigger a re-fetch. It never changes assignments.
//
//	GET  /                snapshot of every cached evaluation, keyed by identifier
//	GET  /telemetry       the telemetry line, as text
//	GET  /healthz         liveness, or readiness when checks are configured
//	POST /refresh         fetch evaluations now; 502 when the backend fails
//	GET  /{name}          one evaluation plus its derived value; 404 when absent
//	GET  /{name}/enabled  {"enabled": bool}
//
// {name} accepts either the feature identifier or its remote name.
//
// # Usage
//
//	r := featureapi.Router(provider,
//		featureapi.WithLogger(log),
//		featureapi.WithReadinessCheck(redis.Healthcheck(client)),
//	)
//	err := featureapi.ListenAndServe(ctx, srvCfg, r, log)
//
// ListenAndServe shuts the server down gracefully once ctx is done.
package featureapi

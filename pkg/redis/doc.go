// Package redis provides connection helpers for the Redis client used by the
// Redis evaluation source.
//
// Connect parses a redis:// URL, pings with retries and returns a ready
// *redis.Client. Healthcheck adapts a client into a readiness probe for the
// diagnostics API.
//
// Configuration is described by Config, whose fields are populated from
// environment variables via pkg/config:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg, config.WithPrefix("FEATURE_"))
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//
// Errors wrap the go-redis cause with errors.Join, so sentinels such as
// ErrRedisNotReady can be matched with errors.Is.
package redis

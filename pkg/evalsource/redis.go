package evalsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

// RedisConfig configures the Redis evaluation source.
type RedisConfig struct {
	// Key of the hash holding one field per feature.
	Key string `env:"REDIS_KEY" envDefault:"feature:evaluations"`
}

// HashReader is the subset of the go-redis client used by RedisFetcher.
type HashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// RedisFetcher reads evaluations the backend publishes into a Redis hash.
// Each field is a feature name and each value is a JSON object:
//
//	HSET feature:evaluations featureA '{"variation":"CONTROL","value":{"stringValue":"x"}}'
type RedisFetcher struct {
	client HashReader
	key    string
	owned  io.Closer
}

var _ feature.Fetcher = (*RedisFetcher)(nil)

// NewRedisFetcher creates a Redis source. The client is owned by the caller.
func NewRedisFetcher(client HashReader, cfg RedisConfig) (*RedisFetcher, error) {
	if client == nil || cfg.Key == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("redis client and key are required"))
	}
	return &RedisFetcher{client: client, key: cfg.Key}, nil
}

type redisEntry struct {
	Variation string        `json:"variation"`
	Value     feature.Value `json:"value"`
}

// FetchEvaluations reads the whole hash in one HGETALL.
// A missing key yields no evaluations rather than an error.
func (f *RedisFetcher) FetchEvaluations(ctx context.Context) ([]feature.RawEvaluation, error) {
	fields, err := f.client.HGetAll(ctx, f.key).Result()
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	// Sorted for deterministic output; hash iteration order is random.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]feature.RawEvaluation, 0, len(fields))
	for _, name := range names {
		var entry redisEntry
		if err := json.Unmarshal([]byte(fields[name]), &entry); err != nil {
			return nil, errors.Join(ErrMalformedResponse, fmt.Errorf("field %q: %w", name, err))
		}
		out = append(out, feature.RawEvaluation{
			Feature:   name,
			Variation: entry.Variation,
			Value:     entry.Value,
		})
	}
	return out, nil
}

// Close releases the Redis client when the fetcher was created by Open.
// Clients passed to NewRedisFetcher are left to their owner.
func (f *RedisFetcher) Close() error {
	if f.owned == nil {
		return nil
	}
	return f.owned.Close()
}

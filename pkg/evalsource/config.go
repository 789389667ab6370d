package evalsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
	"github.com/dmitrymomot/featureconfig/pkg/redis"
)

// Source kinds accepted by Open.
const (
	KindHTTP  = "http"
	KindS3    = "s3"
	KindRedis = "redis"
	KindFile  = "file"
)

// Config selects and configures an evaluation source.
// Load it with pkg/config, typically under the "FEATURE_" prefix.
type Config struct {
	Source    string `env:"SOURCE" envDefault:"http"`
	HTTP      HTTPConfig
	S3        S3Config
	Redis     RedisConfig
	RedisConn redis.Config
	File      FileConfig
}

// Open builds the fetcher selected by cfg.Source.
// The returned fetcher may implement io.Closer; feature.Provider.Close calls it.
func Open(ctx context.Context, cfg Config) (feature.Fetcher, error) {
	switch cfg.Source {
	case KindHTTP:
		f, err := NewHTTPFetcher(cfg.HTTP)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindS3:
		f, err := NewS3Fetcher(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindRedis:
		client, err := redis.Connect(ctx, cfg.RedisConn)
		if err != nil {
			return nil, err
		}
		f, err := NewRedisFetcher(client, cfg.Redis)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		f.owned = client
		return f, nil
	case KindFile:
		f, err := NewFileFetcher(cfg.File)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("unknown source %q", cfg.Source))
	}
}

// Readiness returns a readiness probe for the source behind f,
// or nil when the source has no connection worth probing.
func Readiness(f feature.Fetcher) func(context.Context) error {
	rf, ok := f.(*RedisFetcher)
	if !ok {
		return nil
	}
	if p, ok := rf.client.(redis.Pinger); ok {
		return redis.Healthcheck(p)
	}
	return nil
}

package evalsource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featureconfig/pkg/evalsource"
	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

type fakeHashReader struct {
	key    string
	fields map[string]string
	err    error
}

func (f *fakeHashReader) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	if key != f.key {
		return redis.NewMapStringStringResult(map[string]string{}, nil)
	}
	return redis.NewMapStringStringResult(f.fields, f.err)
}

func TestRedisFetcher(t *testing.T) {
	t.Parallel()

	t.Run("reads hash", func(t *testing.T) {
		t.Parallel()
		client := &fakeHashReader{
			key: "feature:evaluations",
			fields: map[string]string{
				"featureB":         `{"variation":"TREATMENT","value":{"stringValue":"testValue"}}`,
				"featureA":         `{"variation":"CONTROL"}`,
				"ProjectContextV2": `{"variation":"TREATMENT_2","value":{"longValue":2}}`,
			},
		}
		fetcher, err := evalsource.NewRedisFetcher(client, evalsource.RedisConfig{Key: "feature:evaluations"})
		require.NoError(t, err)

		evaluations, err := fetcher.FetchEvaluations(context.Background())
		require.NoError(t, err)
		require.Len(t, evaluations, 3)
		// Sorted by field name
		assert.Equal(t, "ProjectContextV2", evaluations[0].Feature)
		assert.Equal(t, "featureA", evaluations[1].Feature)
		assert.Equal(t, "featureB", evaluations[2].Feature)
		l, ok := evaluations[0].Value.AsLong()
		require.True(t, ok)
		assert.Equal(t, int64(2), l)

		provider := feature.NewProvider(fetcher)
		require.NoError(t, provider.FetchFeatureConfigs(context.Background()))
		assert.Equal(t, "t2", provider.GetProjectContextGroup())
		assert.True(t, provider.GetFeatureB())
		assert.NoError(t, provider.Close(), "caller-owned client is not closed")
	})

	t.Run("missing key yields nothing", func(t *testing.T) {
		t.Parallel()
		fetcher, err := evalsource.NewRedisFetcher(&fakeHashReader{key: "other"}, evalsource.RedisConfig{Key: "feature:evaluations"})
		require.NoError(t, err)
		evaluations, err := fetcher.FetchEvaluations(context.Background())
		require.NoError(t, err)
		assert.Empty(t, evaluations)
	})

	t.Run("malformed field", func(t *testing.T) {
		t.Parallel()
		client := &fakeHashReader{key: "k", fields: map[string]string{"featureA": "CONTROL"}}
		fetcher, err := evalsource.NewRedisFetcher(client, evalsource.RedisConfig{Key: "k"})
		require.NoError(t, err)
		_, err = fetcher.FetchEvaluations(context.Background())
		assert.ErrorIs(t, err, evalsource.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "featureA")
	})

	t.Run("redis error", func(t *testing.T) {
		t.Parallel()
		client := &fakeHashReader{key: "k", err: errors.New("READONLY")}
		fetcher, err := evalsource.NewRedisFetcher(client, evalsource.RedisConfig{Key: "k"})
		require.NoError(t, err)
		_, err = fetcher.FetchEvaluations(context.Background())
		assert.ErrorIs(t, err, evalsource.ErrRequestFailed)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		_, err := evalsource.NewRedisFetcher(nil, evalsource.RedisConfig{Key: "k"})
		assert.ErrorIs(t, err, evalsource.ErrInvalidConfig)
		_, err = evalsource.NewRedisFetcher(&fakeHashReader{}, evalsource.RedisConfig{})
		assert.ErrorIs(t, err, evalsource.ErrInvalidConfig)
	})
}

type fakeHashPinger struct {
	fakeHashReader
	pingErr error
}

func (f *fakeHashPinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	fetcher, err := evalsource.NewRedisFetcher(&fakeHashReader{key: "k"}, evalsource.RedisConfig{Key: "k"})
	require.NoError(t, err)
	assert.Nil(t, evalsource.Readiness(fetcher), "client cannot ping")
	assert.Nil(t, evalsource.Readiness(feature.NewStaticFetcher()))

	client := &fakeHashPinger{fakeHashReader: fakeHashReader{key: "k"}}
	fetcher, err = evalsource.NewRedisFetcher(client, evalsource.RedisConfig{Key: "k"})
	require.NoError(t, err)
	check := evalsource.Readiness(fetcher)
	require.NotNil(t, check)
	assert.NoError(t, check(context.Background()))

	client.pingErr = errors.New("connection refused")
	assert.Error(t, check(context.Background()))
}

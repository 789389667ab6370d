package evalsource_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featureconfig/pkg/evalsource"
	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

const sampleDocument = `{
	"featureEvaluations": [
		{"feature": "testFeature", "variation": "TREATMENT", "value": {"stringValue": "testValue"}},
		{"feature": "featureA", "variation": "CONTROL", "value": {"stringValue": "testValue"}},
		{"feature": "featureB", "variation": "TREATMENT", "value": {"stringValue": "testValue"}},
		{"feature": "customizationArnOverride", "variation": "customizationName", "value": {"stringValue": "customizationARN"}},
		{"feature": "somethingElse", "variation": "TREATMENT", "value": {"boolValue": true}}
	]
}`

func TestHTTPFetcher(t *testing.T) {
	t.Parallel()

	t.Run("fetches evaluations", func(t *testing.T) {
		t.Parallel()

		var got struct {
			ClientID    string            `json:"clientId"`
			UserContext map[string]string `json:"userContext"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "vscode", r.Header.Get("X-Product"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleDocument))
		}))
		defer srv.Close()

		fetcher, err := evalsource.NewHTTPFetcher(
			evalsource.HTTPConfig{Endpoint: srv.URL, APIKey: "secret", ClientID: "client-1"},
			evalsource.WithHTTPClient(srv.Client()),
			evalsource.WithHeader("X-Product", "vscode"),
			evalsource.WithUserContext(map[string]string{"ideCategory": "VSCODE"}),
		)
		require.NoError(t, err)

		evaluations, err := fetcher.FetchEvaluations(context.Background())
		require.NoError(t, err)
		require.Len(t, evaluations, 5)
		assert.Equal(t, "testFeature", evaluations[0].Feature)
		assert.Equal(t, "TREATMENT", evaluations[0].Variation)
		s, ok := evaluations[3].Value.AsString()
		require.True(t, ok)
		assert.Equal(t, "customizationARN", s)
		b, ok := evaluations[4].Value.AsBool()
		require.True(t, ok)
		assert.True(t, b)

		assert.Equal(t, "client-1", got.ClientID)
		assert.Equal(t, map[string]string{"ideCategory": "VSCODE"}, got.UserContext)
	})

	t.Run("generates client id", func(t *testing.T) {
		t.Parallel()
		fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: "https://flags.example.com"})
		require.NoError(t, err)
		_, err = uuid.Parse(fetcher.ClientID())
		assert.NoError(t, err)
	})

	t.Run("unexpected status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "throttled", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: srv.URL})
		require.NoError(t, err)
		_, err = fetcher.FetchEvaluations(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, evalsource.ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "throttled")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{`not json`, `{}`, `{"featureEvaluations": "nope"}`} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: srv.URL})
			require.NoError(t, err)
			_, err = fetcher.FetchEvaluations(context.Background())
			assert.ErrorIs(t, err, evalsource.ErrMalformedResponse, body)
			srv.Close()
		}
	})

	t.Run("empty list is valid", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"featureEvaluations": []}`))
		}))
		defer srv.Close()

		fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: srv.URL})
		require.NoError(t, err)
		evaluations, err := fetcher.FetchEvaluations(context.Background())
		require.NoError(t, err)
		assert.Empty(t, evaluations)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: srv.URL, Timeout: 20 * time.Millisecond})
		require.NoError(t, err)
		_, err = fetcher.FetchEvaluations(context.Background())
		assert.ErrorIs(t, err, evalsource.ErrRequestFailed)
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		t.Parallel()
		for _, endpoint := range []string{"", "flags.example.com", "ftp://flags.example.com", "http://"} {
			_, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: endpoint})
			assert.ErrorIs(t, err, evalsource.ErrInvalidConfig, endpoint)
		}
	})
}

func TestHTTPFetcherWithProvider(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	fetcher, err := evalsource.NewHTTPFetcher(evalsource.HTTPConfig{Endpoint: srv.URL})
	require.NoError(t, err)
	provider := feature.NewProvider(fetcher)

	require.NoError(t, provider.FetchFeatureConfigs(context.Background()))
	const expected = "{testFeature: TREATMENT, featureA: CONTROL, featureB: TREATMENT, customizationArnOverride: customizationName}"
	assert.Equal(t, expected, provider.GetFeatureConfigsTelemetry())

	fail.Store(true)
	err = provider.FetchFeatureConfigs(context.Background())
	assert.ErrorIs(t, err, feature.ErrFetchFailed)
	assert.ErrorIs(t, err, evalsource.ErrUnexpectedStatus)
	assert.Equal(t, expected, provider.GetFeatureConfigsTelemetry())
}

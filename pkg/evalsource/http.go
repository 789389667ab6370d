package evalsource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

// HTTPConfig configures the HTTP evaluation source.
type HTTPConfig struct {
	// Endpoint is the evaluation service URL, e.g. "https://flags.example.com/v1/evaluations".
	Endpoint string `env:"ENDPOINT"`
	// Timeout bounds each request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// ClientID identifies this client to the service; a random one is generated per process when empty.
	ClientID string `env:"CLIENT_ID"`
	// APIKey is sent as a bearer token when set.
	APIKey string `env:"API_KEY"`
}

// HTTPFetcher asks the experimentation service for this client's evaluations.
// It is safe for concurrent use.
type HTTPFetcher struct {
	endpoint    string
	client      *http.Client
	timeout     time.Duration
	clientID    string
	apiKey      string
	userContext map[string]string
	headers     map[string]string
}

var _ feature.Fetcher = (*HTTPFetcher)(nil)

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client, e.g. for proxies or tests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserContext attaches attributes the service may use for assignment.
func WithUserContext(attrs map[string]string) HTTPOption {
	return func(f *HTTPFetcher) {
		maps.Copy(f.userContext, attrs)
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) HTTPOption {
	return func(f *HTTPFetcher) {
		f.headers[key] = value
	}
}

// NewHTTPFetcher creates an HTTP source. The endpoint must be an absolute http(s) URL.
func NewHTTPFetcher(cfg HTTPConfig, opts ...HTTPOption) (*HTTPFetcher, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("invalid endpoint %q", cfg.Endpoint))
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	f := &HTTPFetcher{
		endpoint:    u.String(),
		client:      &http.Client{},
		timeout:     cfg.Timeout,
		clientID:    clientID,
		apiKey:      cfg.APIKey,
		userContext: make(map[string]string),
		headers:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// ClientID returns the identifier sent with every request.
func (f *HTTPFetcher) ClientID() string {
	return f.clientID
}

type evaluationRequest struct {
	ClientID    string            `json:"clientId"`
	UserContext map[string]string `json:"userContext,omitempty"`
}

// FetchEvaluations performs a single request; failures are not retried.
func (f *HTTPFetcher) FetchEvaluations(ctx context.Context) ([]feature.RawEvaluation, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	body, err := json.Marshal(evaluationRequest{ClientID: f.clientID, UserContext: f.userContext})
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Limit how much of an error page ends up in logs
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Join(ErrUnexpectedStatus, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)))
	}

	return decodeDocument(resp.Body)
}

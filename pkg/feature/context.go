package feature

import "context"

type providerContextKey struct{}

// WithContext returns a copy of ctx carrying p.
func WithContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerContextKey{}, p)
}

// FromContext returns the provider stored in ctx, or ErrNoProvider.
func FromContext(ctx context.Context) (*Provider, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	p, ok := ctx.Value(providerContextKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// IsEnabledContext is IsEnabled on the provider stored in ctx.
// Without a provider every feature is disabled.
func IsEnabledContext(ctx context.Context, id string) bool {
	p, err := FromContext(ctx)
	if err != nil {
		return false
	}
	return p.IsEnabled(id)
}

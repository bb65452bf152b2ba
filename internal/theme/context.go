package theme

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when theme state is requested from a context
// that was never given a provider.
var ErrNoProvider = errors.New("theme: no provider in scope; attach one with theme.WithProvider")

type providerKey struct{}

// WithProvider returns a child context carrying p.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider attached to ctx, or ErrNoProvider.
func FromContext(ctx context.Context) (*Provider, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	if p, ok := ctx.Value(providerKey{}).(*Provider); ok && p != nil {
		return p, nil
	}
	return nil, ErrNoProvider
}

// MustFromContext is FromContext for callers that treat a missing provider
// as a programming error. It panics with ErrNoProvider.
func MustFromContext(ctx context.Context) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return p
}

package source

import (
	"fmt"
	"sort"
)

// Registry resolves a company's configured vendor tag to its Provider
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a Registry from providers, rejecting duplicate kinds
func NewRegistry(providers ...Provider) (*Registry, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("source.Registry: at least one provider is required")
	}

	byKind := make(map[string]Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("source.Registry: nil provider")
		}
		kind := p.Kind()
		if kind == "" {
			return nil, fmt.Errorf("source.Registry: provider with empty kind")
		}
		if _, exists := byKind[kind]; exists {
			return nil, fmt.Errorf("source.Registry: duplicate provider kind %q", kind)
		}
		byKind[kind] = p
	}

	return &Registry{providers: byKind}, nil
}

// For returns the provider registered for kind
func (r *Registry) For(kind string) (Provider, bool) {
	p, ok := r.providers[kind]
	return p, ok
}

// Kinds lists registered provider kinds, sorted
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.providers))
	for k := range r.providers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

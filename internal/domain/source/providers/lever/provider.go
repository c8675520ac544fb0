package lever

import (
	"context"
	"fmt"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/domain/source"
	"jobscout/pkg/lever"
)

// postingClient describes the subset of the Lever client used by the provider.
type postingClient interface {
	ListPostings(ctx context.Context, site string) ([]lever.Posting, error)
}

// Provider implements source.Provider using the Lever postings API
type Provider struct {
	client postingClient
}

// NewProvider builds a Lever provider
func NewProvider(client postingClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("lever provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Kind returns the vendor tag
func (p *Provider) Kind() string {
	return "lever"
}

// Fetch lists a company's postings and returns them normalized
func (p *Provider) Fetch(ctx context.Context, company source.Company) ([]domain.Posting, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("lever provider: client is nil")
	}
	if company.Slug == "" {
		return nil, fmt.Errorf("lever provider: company slug is required")
	}

	postings, err := p.client.ListPostings(ctx, company.Slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]domain.Posting, 0, len(postings))
	for _, posting := range postings {
		out = append(out, domain.Posting{
			Company:    company.Name,
			Title:      posting.Title,
			Location:   posting.Location,
			Department: posting.Team,
			URL:        posting.URL,
			Source:     "lever",
			SourceID:   posting.ID,
			PostedAt:   posting.CreatedAt,
			FetchedAt:  now,
		})
	}

	return out, nil
}

var _ source.Provider = (*Provider)(nil)

package ashby

import (
	"context"
	"fmt"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/domain/source"
	"jobscout/pkg/ashby"
)

// boardClient describes the subset of the Ashby client used by the provider.
type boardClient interface {
	ListJobs(ctx context.Context, board string) ([]ashby.Job, error)
}

// Provider implements source.Provider using the Ashby posting API
type Provider struct {
	client boardClient
}

// NewProvider builds an Ashby provider
func NewProvider(client boardClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("ashby provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Kind returns the vendor tag
func (p *Provider) Kind() string {
	return "ashby"
}

// Fetch lists a company's job board and returns normalized postings
func (p *Provider) Fetch(ctx context.Context, company source.Company) ([]domain.Posting, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("ashby provider: client is nil")
	}
	if company.Slug == "" {
		return nil, fmt.Errorf("ashby provider: company slug is required")
	}

	jobs, err := p.client.ListJobs(ctx, company.Slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]domain.Posting, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, domain.Posting{
			Company:    company.Name,
			Title:      j.Title,
			Location:   j.Location,
			Department: j.Department,
			URL:        j.URL,
			Source:     "ashby",
			SourceID:   j.ID,
			PostedAt:   j.PublishedAt,
			FetchedAt:  now,
		})
	}

	return out, nil
}

var _ source.Provider = (*Provider)(nil)

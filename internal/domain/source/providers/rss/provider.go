package rss

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"jobscout/internal/domain"
	"jobscout/internal/domain/source"
)

// Provider implements source.Provider for companies that only publish their
// openings as an RSS or Atom feed.
type Provider struct {
	parser *gofeed.Parser
}

// NewProvider builds a feed provider
func NewProvider() *Provider {
	return &Provider{parser: gofeed.NewParser()}
}

// Kind returns the vendor tag
func (p *Provider) Kind() string {
	return "rss"
}

// Fetch parses the company's feed and returns normalized postings
func (p *Provider) Fetch(ctx context.Context, company source.Company) ([]domain.Posting, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("rss provider: parser is nil")
	}
	if company.URL == "" {
		return nil, fmt.Errorf("rss provider: feed url is required")
	}

	feed, err := p.parser.ParseURLWithContext(company.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss provider: fetch %s: %w", company.Name, err)
	}

	now := time.Now().UTC()
	out := make([]domain.Posting, 0, len(feed.Items))
	for _, item := range feed.Items {
		posting := domain.Posting{
			Company:   company.Name,
			Title:     item.Title,
			URL:       item.Link,
			Source:    "rss",
			SourceID:  itemID(item),
			FetchedAt: now,
		}

		if len(item.Categories) > 0 {
			posting.Location = strings.Join(item.Categories, ", ")
		}

		if item.PublishedParsed != nil {
			posting.PostedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			posting.PostedAt = *item.UpdatedParsed
		}

		out = append(out, posting)
	}

	return out, nil
}

// itemID prefers the feed's own GUID; hashing the link keeps ids stable
// across runs for feeds that omit it.
func itemID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	h := sha256.Sum256([]byte(item.Link))
	return fmt.Sprintf("%x", h[:16])
}

var _ source.Provider = (*Provider)(nil)

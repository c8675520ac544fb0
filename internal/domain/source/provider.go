package source

import (
	"context"

	"jobscout/internal/domain"
)

// Company is one configured job source: a display name plus the identifier
// the vendor's API knows the company by.
type Company struct {
	// Slug is the vendor-side identifier (board token, site name).
	Slug string

	// Name is the display name; it becomes Posting.Company and is part of
	// the dedupe key, so renaming a company re-notifies its postings.
	Name string

	// Kind selects the provider, e.g. "greenhouse" or "lever".
	Kind string

	// URL is the feed address for feed-backed sources.
	URL string
}

// Provider represents one vendor schema (Greenhouse, Ashby, Lever, RSS)
type Provider interface {
	// e.g. "greenhouse"
	Kind() string

	// Fetch returns normalized postings for one configured company
	Fetch(ctx context.Context, company Company) ([]domain.Posting, error)
}

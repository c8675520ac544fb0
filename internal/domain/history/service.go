package history

import (
	"context"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"jobscout/internal/domain"
	"jobscout/internal/errors"
)

// Service tracks which postings have already been notified. It is the only
// component that touches the persisted seen-set: read once at run start,
// written once per diff.
type Service struct {
	repo Repository
	seen mapset.Set[string]
}

// NewService builds a history service over a repository
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("history.Service: repository is required")
	}

	return &Service{
		repo: repo,
		seen: mapset.NewSet[string](),
	}, nil
}

// Load reads the persisted key set into memory. On unreadable state the set
// stays empty and a HISTORY_LOAD error is returned; callers are expected to
// treat it as a warning and proceed, so every posting counts as new.
func (s *Service) Load(ctx context.Context) error {
	s.seen = mapset.NewSet[string]()

	keys, err := s.repo.Load(ctx)
	if err != nil {
		return errors.HistoryLoad("loading seen keys", err)
	}

	s.seen.Append(keys...)
	return nil
}

// DiffAndRecord returns the postings whose keys were not seen before, in
// input order, and marks every incoming key as seen. A key duplicated
// within one call is new only the first time. The grown set is persisted
// once; on a write failure the new postings are still returned together
// with a HISTORY_WRITE error, and they will be re-notified next run.
func (s *Service) DiffAndRecord(ctx context.Context, postings []domain.Posting) ([]domain.Posting, error) {
	fresh := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if s.seen.Add(p.Key()) {
			fresh = append(fresh, p)
		}
	}

	if err := s.repo.Save(ctx, s.Keys()); err != nil {
		return fresh, errors.HistoryWrite("persisting seen keys", err)
	}

	return fresh, nil
}

// Reset clears persisted state so the next Load starts empty
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return errors.HistoryWrite("clearing history", err)
	}

	s.seen = mapset.NewSet[string]()
	return nil
}

// Len reports how many keys are tracked in memory
func (s *Service) Len() int {
	return s.seen.Cardinality()
}

// Contains reports whether key is already tracked
func (s *Service) Contains(key string) bool {
	return s.seen.Contains(key)
}

// Keys returns the tracked keys, sorted for stable persistence
func (s *Service) Keys() []string {
	keys := s.seen.ToSlice()
	sort.Strings(keys)
	return keys
}

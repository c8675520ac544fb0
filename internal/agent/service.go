package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobscout/internal/domain"
	"jobscout/internal/domain/digest"
	"jobscout/internal/domain/filter"
	"jobscout/internal/domain/history"
	"jobscout/internal/domain/source"
	"jobscout/internal/errors"
	"jobscout/internal/notify"
	"jobscout/pkg/logging"
)

// Service runs the fetch, filter, diff, deliver pipeline once.
type Service interface {
	Run(ctx context.Context, opts RunOptions) (Report, error)
}

// RunOptions are the per-invocation switches.
type RunOptions struct {
	// NoFilter bypasses the keyword filter.
	NoFilter bool

	// ResetHistory clears the seen-set before the run.
	ResetHistory bool
}

// Report summarizes one run.
type Report struct {
	RunID    string
	Fetched  int // postings returned by all sources
	Matched  int // postings surviving the filter
	New      int // postings not seen in any earlier run
	Sources  int // companies fetched without error
	Failed   []string
	Warnings []string
	Digest   digest.Digest
}

// Option configures Service
type Option func(*config)

type config struct {
	registry  *source.Registry
	companies []source.Company
	rules     domain.Rules
	history   *history.Service
	notifiers []notify.Notifier
	sendEmpty bool
	clock     func() time.Time
	log       *logging.Logger
}

func WithRegistry(r *source.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

func WithCompanies(companies ...source.Company) Option {
	return func(c *config) {
		c.companies = companies
	}
}

func WithRules(rules domain.Rules) Option {
	return func(c *config) {
		c.rules = rules
	}
}

func WithHistory(h *history.Service) Option {
	return func(c *config) {
		c.history = h
	}
}

func WithNotifiers(notifiers ...notify.Notifier) Option {
	return func(c *config) {
		c.notifiers = notifiers
	}
}

// WithSendEmpty delivers the digest even when nothing is new.
func WithSendEmpty(send bool) Option {
	return func(c *config) {
		c.sendEmpty = send
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.registry == nil {
		return nil, fmt.Errorf("agent.Service: registry is required")
	}
	if len(cfg.companies) == 0 {
		return nil, fmt.Errorf("agent.Service: at least one company is required")
	}
	if cfg.history == nil {
		return nil, fmt.Errorf("agent.Service: history is required")
	}
	if len(cfg.notifiers) == 0 {
		return nil, fmt.Errorf("agent.Service: at least one notifier is required")
	}

	return &service{
		registry:  cfg.registry,
		companies: cfg.companies,
		rules:     cfg.rules,
		history:   cfg.history,
		notifiers: cfg.notifiers,
		sendEmpty: cfg.sendEmpty,
		clock:     cfg.clock,
		log:       cfg.log,
	}, nil
}

type service struct {
	registry  *source.Registry
	companies []source.Company
	rules     domain.Rules
	history   *history.Service
	notifiers []notify.Notifier
	sendEmpty bool
	clock     func() time.Time
	log       *logging.Logger
}

func (s *service) Run(ctx context.Context, opts RunOptions) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := s.log.With("run_id", report.RunID)

	if opts.ResetHistory {
		if err := s.history.Reset(ctx); err != nil {
			return report, err
		}
		log.Info("seen-set cleared")
	}

	if err := s.history.Load(ctx); err != nil {
		// fail open: an unreadable seen-set means everything is new
		report.Warnings = append(report.Warnings, err.Error())
		log.Warn("history load failed, starting from an empty seen-set", "err", err)
	}

	var merged []domain.Posting
	for _, company := range s.companies {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		provider, ok := s.registry.For(company.Kind)
		if !ok {
			report.Failed = append(report.Failed, company.Name)
			log.Warn("no provider for source", "company", company.Name, "source", company.Kind)
			continue
		}

		postings, err := provider.Fetch(ctx, company)
		if err != nil {
			ferr := errors.SourceFetch(fmt.Sprintf("fetching %s", company.Name), err)
			report.Failed = append(report.Failed, company.Name)
			report.Warnings = append(report.Warnings, ferr.Error())
			log.Warn("source fetch failed", "company", company.Name, "source", company.Kind, "err", err)
			continue
		}

		report.Sources++
		merged = append(merged, postings...)
		log.Debug("fetched postings", "company", company.Name, "count", len(postings))
	}
	report.Fetched = len(merged)

	if report.Sources == 0 {
		return report, errors.SourceFetch("every source failed", nil)
	}

	matched := merged
	if opts.NoFilter {
		log.Info("keyword filter bypassed")
	} else {
		matched = filter.Apply(merged, s.rules)
	}
	report.Matched = len(matched)

	fresh, err := s.history.DiffAndRecord(ctx, matched)
	if err != nil {
		// new postings still go out; they will be re-notified next run
		report.Warnings = append(report.Warnings, err.Error())
		log.Warn("recording seen keys failed", "err", err)
	}
	report.New = len(fresh)

	report.Digest = digest.Build(fresh, digest.Meta{
		TotalOpen:   report.Matched,
		Companies:   len(s.companies),
		GeneratedAt: s.clock(),
	})

	if report.Digest.Empty() && !s.sendEmpty {
		log.Info("no new postings, skipping delivery")
	} else {
		for _, n := range s.notifiers {
			if err := n.Send(ctx, report.Digest); err != nil {
				derr := errors.Delivery(fmt.Sprintf("sending via %s", n.Name()), err)
				report.Warnings = append(report.Warnings, derr.Error())
				log.Warn("delivery failed", "channel", n.Name(), "err", err)
				continue
			}
			log.Info("digest delivered", "channel", n.Name())
		}
	}

	log.Info("run complete",
		"fetched", report.Fetched,
		"matched", report.Matched,
		"new", report.New,
		"sources", report.Sources,
		"failed", len(report.Failed),
	)
	return report, nil
}

package agent

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobscout/internal/domain"
	"jobscout/internal/domain/digest"
	"jobscout/internal/domain/history"
	"jobscout/internal/domain/source"
	"jobscout/internal/errors"
	"jobscout/internal/storage/file"
)

type fakeProvider struct {
	postings map[string][]domain.Posting
	errs     map[string]error
}

func (f *fakeProvider) Kind() string { return "testsrc" }

func (f *fakeProvider) Fetch(_ context.Context, c source.Company) ([]domain.Posting, error) {
	if err := f.errs[c.Slug]; err != nil {
		return nil, err
	}
	return f.postings[c.Slug], nil
}

type captureNotifier struct {
	digests []digest.Digest
	err     error
}

func (c *captureNotifier) Name() string { return "capture" }

func (c *captureNotifier) Send(_ context.Context, d digest.Digest) error {
	if c.err != nil {
		return c.err
	}
	c.digests = append(c.digests, d)
	return nil
}

var testRules = domain.Rules{
	Include:  []string{"accountant"},
	Exclude:  []string{"manager"},
	Location: []string{"san francisco"},
	Remote:   []string{"remote"},
}

var testCompanies = []source.Company{
	{Slug: "acme", Name: "Acme Co", Kind: "testsrc"},
	{Slug: "beta", Name: "Beta Inc", Kind: "testsrc"},
}

func defaultPostings() map[string][]domain.Posting {
	return map[string][]domain.Posting{
		"acme": {
			{Company: "Acme Co", Title: "Staff Accountant", Location: "Remote", SourceID: "1", Source: "testsrc"},
			{Company: "Acme Co", Title: "Engineering Manager", Location: "Remote", SourceID: "2", Source: "testsrc"},
		},
		"beta": {
			{Company: "Beta Inc", Title: "Senior Accountant", Location: "San Francisco, CA", SourceID: "7", Source: "testsrc"},
		},
	}
}

func buildService(t *testing.T, dir string, fake *fakeProvider, extra ...Option) (Service, *captureNotifier) {
	t.Helper()

	registry, err := source.NewRegistry(fake)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	store, err := file.NewStore(filepath.Join(dir, "seen_jobs.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	hist, err := history.NewService(store)
	if err != nil {
		t.Fatalf("history.NewService: %v", err)
	}

	notifier := &captureNotifier{}
	opts := []Option{
		WithRegistry(registry),
		WithCompanies(testCompanies...),
		WithRules(testRules),
		WithHistory(hist),
		WithNotifiers(notifier),
		WithClock(func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }),
	}
	svc, err := NewService(append(opts, extra...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, notifier
}

func TestRunFirstAndSecondPass(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	svc, notifier := buildService(t, dir, &fakeProvider{postings: defaultPostings()})
	report, err := svc.Run(ctx, RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Fetched != 3 || report.Matched != 2 || report.New != 2 {
		t.Errorf("report = fetched %d, matched %d, new %d; want 3, 2, 2",
			report.Fetched, report.Matched, report.New)
	}
	if report.Sources != 2 || len(report.Failed) != 0 {
		t.Errorf("sources = %d, failed = %v", report.Sources, report.Failed)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}

	if len(notifier.digests) != 1 {
		t.Fatalf("expected one delivery, got %d", len(notifier.digests))
	}
	d := notifier.digests[0]
	if d.TotalNew != 2 || len(d.Groups) != 2 {
		t.Errorf("digest = %d new in %d groups", d.TotalNew, len(d.Groups))
	}
	if d.Groups[0].Company != "Acme Co" || d.Groups[1].Company != "Beta Inc" {
		t.Errorf("group order = %q, %q", d.Groups[0].Company, d.Groups[1].Company)
	}

	// a fresh process over the same store sees nothing new
	svc2, notifier2 := buildService(t, dir, &fakeProvider{postings: defaultPostings()})
	report2, err := svc2.Run(ctx, RunOptions{})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report2.New != 0 {
		t.Errorf("second run found %d new postings, want 0", report2.New)
	}
	if len(notifier2.digests) != 0 {
		t.Errorf("empty digest should be suppressed, got %d deliveries", len(notifier2.digests))
	}
}

func TestRunSourceFailureContinues(t *testing.T) {
	fake := &fakeProvider{
		postings: defaultPostings(),
		errs:     map[string]error{"beta": fmt.Errorf("connection refused")},
	}
	svc, notifier := buildService(t, t.TempDir(), fake)

	report, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Sources != 1 {
		t.Errorf("Sources = %d, want 1", report.Sources)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "Beta Inc" {
		t.Errorf("Failed = %v", report.Failed)
	}
	if report.New != 1 {
		t.Errorf("New = %d, want the surviving source's posting", report.New)
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, string(errors.ErrTypeSourceFetch)) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a source fetch warning, got %v", report.Warnings)
	}

	if len(notifier.digests) != 1 {
		t.Fatalf("expected delivery despite one failed source")
	}
	if g := notifier.digests[0].Groups; len(g) != 1 || g[0].Company != "Acme Co" {
		t.Errorf("digest should reflect only the succeeding source: %v", g)
	}
}

func TestRunAllSourcesFail(t *testing.T) {
	fake := &fakeProvider{
		errs: map[string]error{
			"acme": fmt.Errorf("dns failure"),
			"beta": fmt.Errorf("dns failure"),
		},
	}
	svc, notifier := buildService(t, t.TempDir(), fake)

	_, err := svc.Run(context.Background(), RunOptions{})
	if err == nil {
		t.Fatal("expected error when every source fails")
	}
	if !errors.IsType(err, errors.ErrTypeSourceFetch) {
		t.Errorf("error = %v, want %s", err, errors.ErrTypeSourceFetch)
	}
	if len(notifier.digests) != 0 {
		t.Error("nothing should be delivered when every source fails")
	}
}

func TestRunNoFilter(t *testing.T) {
	svc, _ := buildService(t, t.TempDir(), &fakeProvider{postings: defaultPostings()})

	report, err := svc.Run(context.Background(), RunOptions{NoFilter: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Matched != report.Fetched {
		t.Errorf("no-filter run matched %d of %d fetched", report.Matched, report.Fetched)
	}
	if report.New != 3 {
		t.Errorf("New = %d, want all fetched postings", report.New)
	}
}

func TestRunResetHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	svc, _ := buildService(t, dir, &fakeProvider{postings: defaultPostings()})
	if _, err := svc.Run(ctx, RunOptions{}); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	svc2, _ := buildService(t, dir, &fakeProvider{postings: defaultPostings()})
	report, err := svc2.Run(ctx, RunOptions{ResetHistory: true})
	if err != nil {
		t.Fatalf("reset Run: %v", err)
	}
	if report.New != 2 {
		t.Errorf("New after reset = %d, want 2", report.New)
	}
}

func TestRunSendEmpty(t *testing.T) {
	noMatches := &fakeProvider{postings: map[string][]domain.Posting{
		"acme": {{Company: "Acme Co", Title: "Barista", Location: "Remote", SourceID: "9", Source: "testsrc"}},
	}}

	svc, notifier := buildService(t, t.TempDir(), noMatches, WithSendEmpty(true))
	report, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.New != 0 {
		t.Fatalf("New = %d, want 0", report.New)
	}
	if len(notifier.digests) != 1 {
		t.Fatalf("send_empty should deliver the empty digest")
	}
	if !notifier.digests[0].Empty() {
		t.Error("delivered digest should be empty")
	}
}

type stubRepo struct {
	loadErr error
	saveErr error
}

func (r *stubRepo) Load(context.Context) ([]string, error) { return nil, r.loadErr }
func (r *stubRepo) Save(context.Context, []string) error   { return r.saveErr }
func (r *stubRepo) Clear(context.Context) error            { return nil }

func buildServiceWithRepo(t *testing.T, repo history.Repository) (Service, *captureNotifier) {
	t.Helper()

	registry, err := source.NewRegistry(&fakeProvider{postings: defaultPostings()})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	hist, err := history.NewService(repo)
	if err != nil {
		t.Fatalf("history.NewService: %v", err)
	}

	notifier := &captureNotifier{}
	svc, err := NewService(
		WithRegistry(registry),
		WithCompanies(testCompanies...),
		WithRules(testRules),
		WithHistory(hist),
		WithNotifiers(notifier),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, notifier
}

func TestRunHistoryLoadFailureIsWarning(t *testing.T) {
	svc, notifier := buildServiceWithRepo(t, &stubRepo{loadErr: fmt.Errorf("corrupt state")})

	report, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.New != 2 {
		t.Errorf("New = %d, want everything treated as new", report.New)
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, string(errors.ErrTypeHistoryLoad)) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a history load warning, got %v", report.Warnings)
	}
	if len(notifier.digests) != 1 {
		t.Error("digest should still be delivered")
	}
}

func TestRunHistoryWriteFailureIsWarning(t *testing.T) {
	svc, notifier := buildServiceWithRepo(t, &stubRepo{saveErr: fmt.Errorf("disk full")})

	report, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.New != 2 {
		t.Errorf("New = %d, want 2", report.New)
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, string(errors.ErrTypeHistoryWrite)) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a history write warning, got %v", report.Warnings)
	}
	if len(notifier.digests) != 1 {
		t.Error("new postings should still be delivered after a failed save")
	}
}

func TestRunDeliveryFailureIsWarning(t *testing.T) {
	registry, err := source.NewRegistry(&fakeProvider{postings: defaultPostings()})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	store, err := file.NewStore(filepath.Join(t.TempDir(), "seen_jobs.txt"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	hist, err := history.NewService(store)
	if err != nil {
		t.Fatalf("history.NewService: %v", err)
	}

	failing := &captureNotifier{err: fmt.Errorf("smtp down")}
	working := &captureNotifier{}
	svc, err := NewService(
		WithRegistry(registry),
		WithCompanies(testCompanies...),
		WithRules(testRules),
		WithHistory(hist),
		WithNotifiers(failing, working),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	report, err := svc.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, string(errors.ErrTypeDelivery)) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a delivery warning, got %v", report.Warnings)
	}
	if len(working.digests) != 1 {
		t.Error("remaining channels should still deliver")
	}
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(); err == nil {
		t.Error("expected error for missing registry")
	}

	registry, err := source.NewRegistry(&fakeProvider{})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	hist, err := history.NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("history.NewService: %v", err)
	}

	_, err = NewService(
		WithRegistry(registry),
		WithCompanies(testCompanies...),
		WithHistory(hist),
	)
	if err == nil {
		t.Error("expected error for missing notifiers")
	}
}

package filter

import (
	"testing"

	"jobscout/internal/domain"
)

func testRules() domain.Rules {
	return domain.Rules{
		Include:  []string{"accountant"},
		Exclude:  []string{"manager", "director"},
		Location: []string{"san francisco", "montreal"},
		Remote:   []string{"remote", "hybrid"},
	}
}

func TestMatches(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name    string
		posting domain.Posting
		want    bool
	}{
		{
			name:    "matching title and location",
			posting: domain.Posting{Title: "Senior Accountant, GL", Location: "San Francisco, CA"},
			want:    true,
		},
		{
			name:    "manager title rejected",
			posting: domain.Posting{Title: "Accounting Manager", Location: "San Francisco, CA"},
			want:    false,
		},
		{
			name: "exclude wins when include also matches",
			posting: domain.Posting{
				Title:    "Accountant Manager, GL Systems",
				Location: "San Francisco, CA",
			},
			want: false,
		},
		{
			name:    "location without any keyword",
			posting: domain.Posting{Title: "Senior Accountant, GL", Location: "Austin, TX"},
			want:    false,
		},
		{
			name:    "remote designation passes location check",
			posting: domain.Posting{Title: "Senior Accountant, GL", Location: "Remote - US"},
			want:    true,
		},
		{
			name:    "empty location rejected",
			posting: domain.Posting{Title: "Senior Accountant, GL"},
			want:    false,
		},
		{
			name:    "no include keyword",
			posting: domain.Posting{Title: "Software Engineer", Location: "San Francisco, CA"},
			want:    false,
		},
		{
			name:    "matching is case insensitive",
			posting: domain.Posting{Title: "SENIOR ACCOUNTANT", Location: "SAN FRANCISCO"},
			want:    true,
		},
		{
			name:    "diacritics are folded",
			posting: domain.Posting{Title: "Staff Accountant", Location: "Montréal, QC"},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.posting, rules); got != tt.want {
				t.Errorf("Matches(%q / %q) = %v, want %v", tt.posting.Title, tt.posting.Location, got, tt.want)
			}
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	postings := []domain.Posting{
		{Company: "Acme Co", Title: "Senior Accountant, GL", Location: "San Francisco, CA", SourceID: "1"},
		{Company: "Acme Co", Title: "Engineering Manager", Location: "San Francisco, CA", SourceID: "2"},
		{Company: "Beta Inc", Title: "Staff Accountant", Location: "Remote", SourceID: "3"},
		{Company: "Beta Inc", Title: "Accountant", Location: "London, UK", SourceID: "4"},
	}

	got := Apply(postings, testRules())

	if len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
	if got[0].SourceID != "1" || got[1].SourceID != "3" {
		t.Errorf("order not preserved: %q, %q", got[0].SourceID, got[1].SourceID)
	}
}

func TestApplyEmptyIncludeRejectsAll(t *testing.T) {
	postings := []domain.Posting{
		{Title: "Senior Accountant, GL", Location: "San Francisco, CA"},
	}

	got := Apply(postings, domain.Rules{Location: []string{"san francisco"}})
	if len(got) != 0 {
		t.Errorf("expected no postings without include keywords, got %d", len(got))
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Zürich"); got != "zurich" {
		t.Errorf("Normalize(Zürich) = %q", got)
	}
	if got := Normalize("São Paulo"); got != "sao paulo" {
		t.Errorf("Normalize(São Paulo) = %q", got)
	}
}

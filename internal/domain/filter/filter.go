package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"jobscout/internal/domain"
)

// Normalize lowercases s and strips diacritics, so "Montréal" and
// "montreal" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return strings.ToLower(result)
}

// Apply filters postings against rules, preserving input order
func Apply(postings []domain.Posting, rules domain.Rules) []domain.Posting {
	m := newMatcher(rules)

	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if m.matches(p) {
			out = append(out, p)
		}
	}

	return out
}

// Matches checks a single posting against rules. The title needs an include
// keyword and no exclude keyword (exclude wins when both match), and the
// location needs a location or remote keyword. An empty location never
// matches. All matching is substring-based on normalized text.
func Matches(p domain.Posting, rules domain.Rules) bool {
	return newMatcher(rules).matches(p)
}

type matcher struct {
	include  []string
	exclude  []string
	location []string
	remote   []string
}

func newMatcher(rules domain.Rules) matcher {
	return matcher{
		include:  normalizeAll(rules.Include),
		exclude:  normalizeAll(rules.Exclude),
		location: normalizeAll(rules.Location),
		remote:   normalizeAll(rules.Remote),
	}
}

func (m matcher) matches(p domain.Posting) bool {
	title := Normalize(p.Title)
	if !containsAny(title, m.include) {
		return false
	}
	if containsAny(title, m.exclude) {
		return false
	}

	location := Normalize(p.Location)
	if location == "" {
		return false
	}

	return containsAny(location, m.location) || containsAny(location, m.remote)
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = Normalize(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

package domain

import "time"

// KeySeparator joins company and source id into a dedupe key.
const KeySeparator = "::"

// Posting is the normalized job posting entity
type Posting struct {
	Company    string
	Title      string
	Location   string
	Department string
	URL        string
	Source     string
	SourceID   string
	PostedAt   time.Time
	FetchedAt  time.Time
}

// Key returns the identity of a posting across runs. It depends only on
// the company display name and the vendor's stable posting id, so reworded
// titles or locations still map to the same key.
func (p Posting) Key() string {
	return p.Company + KeySeparator + p.SourceID
}

// Rules describe the keyword filter configuration
type Rules struct {
	Include  []string
	Exclude  []string
	Location []string
	Remote   []string
}

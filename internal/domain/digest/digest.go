package digest

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
	"time"

	"jobscout/internal/domain"
)

//go:embed digest.txt.tmpl
var textSource string

//go:embed digest.html.tmpl
var htmlSource string

var (
	textTmpl = texttmpl.Must(texttmpl.New("digest.txt").Parse(textSource))
	htmlTmpl = htmltmpl.Must(htmltmpl.New("digest.html").Parse(htmlSource))
)

// Group holds one company's new postings in input order.
type Group struct {
	Company  string
	Postings []domain.Posting
}

// Meta carries the run-level counters that frame a digest.
type Meta struct {
	TotalOpen   int
	Companies   int
	GeneratedAt time.Time
}

// Digest is one run's new postings arranged for delivery.
type Digest struct {
	Groups      []Group
	TotalNew    int
	TotalOpen   int
	Companies   int
	GeneratedAt time.Time
}

// Build groups postings by company, preserving the order in which
// companies first appear and the input order within each company.
func Build(postings []domain.Posting, meta Meta) Digest {
	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	d := Digest{
		TotalNew:    len(postings),
		TotalOpen:   meta.TotalOpen,
		Companies:   meta.Companies,
		GeneratedAt: generated,
	}

	index := make(map[string]int)
	for _, p := range postings {
		i, ok := index[p.Company]
		if !ok {
			i = len(d.Groups)
			index[p.Company] = i
			d.Groups = append(d.Groups, Group{Company: p.Company})
		}
		d.Groups[i].Postings = append(d.Groups[i].Postings, p)
	}
	return d
}

// Empty reports whether the digest carries no new postings.
func (d Digest) Empty() bool {
	return d.TotalNew == 0
}

// Subject is the one-line summary used for email subjects and log output.
func (d Digest) Subject() string {
	date := d.GeneratedAt.Format("Jan 02")
	if d.TotalNew > 0 {
		return fmt.Sprintf("Job Digest: %d new, %d open positions (%s)", d.TotalNew, d.TotalOpen, date)
	}
	return fmt.Sprintf("Job Digest: %d open positions (%s)", d.TotalOpen, date)
}

// LongDate is the header date used by the rendered documents.
func (d Digest) LongDate() string {
	return d.GeneratedAt.Format("Monday, January 02, 2006")
}

// Text renders the plain-text document.
func (d Digest) Text() (string, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering text digest: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the HTML document. Posting fields are escaped by the
// template engine; vendors occasionally put markup in titles.
func (d Digest) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("rendering html digest: %w", err)
	}
	return buf.String(), nil
}

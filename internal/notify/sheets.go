package notify

import (
	"context"
	"fmt"

	"jobscout/internal/domain/digest"
)

const defaultSheetsRange = "Sheet1!A:F"

// appender is the subset of pkg/sheets.Client the notifier needs.
type appender interface {
	AppendValues(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error
}

// Sheets appends one spreadsheet row per new posting, building a
// running log of everything the digest has surfaced.
type Sheets struct {
	client        appender
	spreadsheetID string
	writeRange    string
}

func NewSheets(client appender, spreadsheetID, writeRange string) (*Sheets, error) {
	if client == nil {
		return nil, fmt.Errorf("sheets: client is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if writeRange == "" {
		writeRange = defaultSheetsRange
	}
	return &Sheets{
		client:        client,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

func (s *Sheets) Name() string {
	return "sheets"
}

func (s *Sheets) Send(ctx context.Context, d digest.Digest) error {
	if d.Empty() {
		return nil
	}

	date := d.GeneratedAt.Format("2006-01-02")
	var rows [][]interface{}
	for _, g := range d.Groups {
		for _, p := range g.Postings {
			rows = append(rows, []interface{}{date, p.Company, p.Title, p.Location, p.Department, p.URL})
		}
	}

	if err := s.client.AppendValues(ctx, s.spreadsheetID, s.writeRange, rows); err != nil {
		return fmt.Errorf("sheets: appending %d rows: %w", len(rows), err)
	}
	return nil
}

var _ Notifier = (*Sheets)(nil)

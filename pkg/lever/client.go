package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.lever.co"
	defaultTimeout = 30 * time.Second
)

// NewClient instantiates a Lever postings API client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListPostings fetches every published posting for a company site
func (c *Client) ListPostings(ctx context.Context, site string) ([]Posting, error) {
	if c == nil {
		return nil, fmt.Errorf("lever: client is nil")
	}
	if site == "" {
		return nil, fmt.Errorf("lever: site is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("lever: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "v0", "postings", site)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("lever: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("lever: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []posting
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("lever: decode response: %w", err)
	}

	postings := make([]Posting, 0, len(payload))
	for _, p := range payload {
		postings = append(postings, mapPosting(p))
	}

	return postings, nil
}

func mapPosting(p posting) Posting {
	out := Posting{
		ID:       p.ID,
		Title:    p.Text,
		Location: p.Categories.Location,
		Team:     p.Categories.Team,
		URL:      p.HostedURL,
	}

	if p.CreatedAt > 0 {
		out.CreatedAt = time.UnixMilli(p.CreatedAt).UTC()
	}

	return out
}

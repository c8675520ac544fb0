package ashby

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
	defaultBaseURL = "https://api.ashbyhq.com"
	defaultTimeout = 30 * time.Second
	jobBoardURL    = "https://jobs.ashbyhq.com"
)

// NewClient instantiates an Ashby posting API client
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

// ListJobs fetches every open posting on a company's job board
func (c *Client) ListJobs(ctx context.Context, board string) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("ashby: client is nil")
	}
	if board == "" {
		return nil, fmt.Errorf("ashby: job board name is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("ashby: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "posting-api", "job-board", board)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("ashby: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ashby: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload jobBoardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("ashby: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Jobs))
	for _, posting := range payload.Jobs {
		jobs = append(jobs, mapPosting(board, posting))
	}

	return jobs, nil
}

func mapPosting(board string, posting jobPosting) Job {
	job := Job{
		ID:         posting.ID,
		Title:      posting.Title,
		Location:   posting.Location,
		Department: posting.Department,
		URL:        posting.JobURL,
	}

	if job.URL == "" {
		job.URL = fmt.Sprintf("%s/%s/%s", jobBoardURL, board, posting.ID)
	}

	if posting.PublishedAt != "" {
		if ts, err := time.Parse(time.RFC3339, posting.PublishedAt); err == nil {
			job.PublishedAt = ts
		}
	}

	return job
}

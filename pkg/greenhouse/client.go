package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://boards-api.greenhouse.io"
	defaultTimeout = 30 * time.Second
	jobBoardURL    = "https://boards.greenhouse.io"
)

// NewClient instantiates a Greenhouse board API client
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
		return nil, fmt.Errorf("greenhouse: client is nil")
	}
	if board == "" {
		return nil, fmt.Errorf("greenhouse: board token is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("greenhouse: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "v1", "boards", board, "jobs")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("greenhouse: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("greenhouse: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("greenhouse: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Jobs))
	for _, posting := range payload.Jobs {
		jobs = append(jobs, mapPosting(board, posting))
	}

	return jobs, nil
}

func mapPosting(board string, posting boardJob) Job {
	id := strconv.FormatInt(posting.ID, 10)

	job := Job{
		ID:       id,
		Title:    posting.Title,
		Location: posting.Location.Name,
		URL:      fmt.Sprintf("%s/%s/jobs/%s", jobBoardURL, board, id),
	}

	if len(posting.Departments) > 0 {
		job.Department = posting.Departments[0].Name
	}

	if posting.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, posting.UpdatedAt); err == nil {
			job.UpdatedAt = ts
		}
	}

	return job
}

package greenhouse

import (
	"net/http"
	"time"
)

// Config defines Greenhouse board API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client queries the public Greenhouse job board API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type boardJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	UpdatedAt   string `json:"updated_at"`
	AbsoluteURL string `json:"absolute_url"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"departments"`
}

// Job represents a normalized Greenhouse board posting.
type Job struct {
	ID         string
	Title      string
	Location   string
	Department string
	URL        string
	UpdatedAt  time.Time
}

package ashby

import (
	"net/http"
	"time"
)

// Config defines Ashby posting API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client queries the public Ashby job posting API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type jobBoardResponse struct {
	APIVersion string       `json:"apiVersion"`
	Jobs       []jobPosting `json:"jobs"`
}

type jobPosting struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Department     string `json:"department"`
	Team           string `json:"team"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	PublishedAt    string `json:"publishedAt"`
	IsListed       bool   `json:"isListed"`
	IsRemote       bool   `json:"isRemote"`
	JobURL         string `json:"jobUrl"`
	ApplyURL       string `json:"applyUrl"`
}

// Job represents a normalized Ashby job posting.
type Job struct {
	ID          string
	Title       string
	Location    string
	Department  string
	URL         string
	PublishedAt time.Time
}

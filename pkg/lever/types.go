package lever

import (
	"net/http"
	"time"
)

// Config defines Lever postings API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client queries the public Lever postings API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// The postings endpoint returns a bare JSON array, no envelope.
type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Categories struct {
		Commitment string `json:"commitment"`
		Department string `json:"department"`
		Location   string `json:"location"`
		Team       string `json:"team"`
	} `json:"categories"`
	Country       string `json:"country"`
	WorkplaceType string `json:"workplaceType"`
	HostedURL     string `json:"hostedUrl"`
	ApplyURL      string `json:"applyUrl"`
	CreatedAt     int64  `json:"createdAt"`
}

// Posting represents a normalized Lever posting.
type Posting struct {
	ID        string
	Title     string
	Location  string
	Team      string
	URL       string
	CreatedAt time.Time
}

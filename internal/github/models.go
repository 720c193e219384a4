package github

import "time"

// PullRequest is a lightweight summary of a merged pull request.
type PullRequest struct {
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	URL      string    `json:"url"`
	MergedAt time.Time `json:"merged_at"`
	Labels   []string  `json:"labels"`
	Author   string    `json:"author"`
}

// Release is a lightweight summary of a published release.
type Release struct {
	Tag         string    `json:"tag"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

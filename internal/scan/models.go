package scan

import "github.com/reillywatson/changedigest/internal/github"

// RepoChanges holds all notable changes for a single repo in the lookback window.
type RepoChanges struct {
	Repo     string               `json:"repo"`
	PRs      []github.PullRequest `json:"prs"`
	Releases []github.Release     `json:"releases"`
}

func (r RepoChanges) HasChanges() bool {
	return len(r.PRs) > 0 || len(r.Releases) > 0
}

// ProductChanges aggregates changes across all repos that belong to one product.
type ProductChanges struct {
	Product string        `json:"product"`
	Repos   []RepoChanges `json:"repos"`
}

// HasChanges reports whether at least one member repo saw any activity.
func (p ProductChanges) HasChanges() bool {
	for _, r := range p.Repos {
		if r.HasChanges() {
			return true
		}
	}
	return false
}

// TotalPRs counts merged PRs across all member repos.
func (p ProductChanges) TotalPRs() int {
	n := 0
	for _, r := range p.Repos {
		n += len(r.PRs)
	}
	return n
}

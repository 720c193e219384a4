package github

import (
	"context"
	"fmt"
	"iter"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// ActivityClient defines the interface for fetching repository activity.
// Both sequences are lazy and newest-first: pages are only fetched as the
// caller keeps consuming, so a caller that stops early never pays for the
// rest of the repository's history.
type ActivityClient interface {
	MergedPullRequests(ctx context.Context, owner, repo string) iter.Seq2[PullRequest, error]
	Releases(ctx context.Context, owner, repo string) iter.Seq2[Release, error]
}

type Client struct {
	client *github.Client
}

func NewClient(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// MergedPullRequests yields merged PRs for a repository, most recently
// merged first. Closed-but-unmerged PRs are skipped. A fetch error is
// yielded as the final element of the sequence.
func (c *Client) MergedPullRequests(ctx context.Context, owner, repo string) iter.Seq2[PullRequest, error] {
	return func(yield func(PullRequest, error) bool) {
		opts := &github.PullRequestListOptions{
			State:       "closed",
			Sort:        "updated",
			Direction:   "desc",
			ListOptions: github.ListOptions{PerPage: 100},
		}

		for {
			prs, resp, err := c.client.PullRequests.List(ctx, owner, repo, opts)
			if err != nil {
				yield(PullRequest{}, fmt.Errorf("failed to fetch pull requests for %s/%s: %w", owner, repo, err))
				return
			}

			for _, pr := range prs {
				// Closed without merging, or still open: no merge timestamp.
				if pr.MergedAt == nil {
					continue
				}
				if !yield(convertPullRequest(pr), nil) {
					return
				}
			}

			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// Releases yields published releases for a repository, most recently
// published first. Drafts have no publish timestamp and are skipped.
func (c *Client) Releases(ctx context.Context, owner, repo string) iter.Seq2[Release, error] {
	return func(yield func(Release, error) bool) {
		opts := &github.ListOptions{PerPage: 100}

		for {
			releases, resp, err := c.client.Repositories.ListReleases(ctx, owner, repo, opts)
			if err != nil {
				yield(Release{}, fmt.Errorf("failed to fetch releases for %s/%s: %w", owner, repo, err))
				return
			}

			for _, rel := range releases {
				if rel.PublishedAt == nil {
					continue
				}
				if !yield(convertRelease(rel), nil) {
					return
				}
			}

			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

func convertPullRequest(pr *github.PullRequest) PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	author := pr.GetUser().GetLogin()
	if author == "" {
		author = "unknown"
	}

	return PullRequest{
		Number:   pr.GetNumber(),
		Title:    pr.GetTitle(),
		Body:     pr.GetBody(),
		URL:      pr.GetHTMLURL(),
		MergedAt: pr.GetMergedAt(),
		Labels:   labels,
		Author:   author,
	}
}

func convertRelease(rel *github.RepositoryRelease) Release {
	name := rel.GetName()
	if name == "" {
		name = rel.GetTagName()
	}

	return Release{
		Tag:         rel.GetTagName(),
		Name:        name,
		Body:        rel.GetBody(),
		URL:         rel.GetHTMLURL(),
		PublishedAt: rel.GetPublishedAt().Time,
	}
}

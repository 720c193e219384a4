package scan

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reillywatson/changedigest/internal/config"
	"github.com/reillywatson/changedigest/internal/github"
)

// scanWorkers bounds how many repos are fetched concurrently.
const scanWorkers = 8

// RepoScanner scans one repository for activity inside the lookback window.
type RepoScanner interface {
	ScanRepo(ctx context.Context, slug string, since time.Time) (RepoChanges, error)
}

type Scanner struct {
	client github.ActivityClient
}

func NewScanner(client github.ActivityClient) *Scanner {
	return &Scanner{client: client}
}

// ScanRepo collects merged PRs and published releases for one repo, newest
// first, stopping at the window cutoff. PRs and releases are separate
// timelines, so each stream short-circuits independently.
func (s *Scanner) ScanRepo(ctx context.Context, slug string, since time.Time) (RepoChanges, error) {
	owner, repo, err := config.SplitSlug(slug)
	if err != nil {
		return RepoChanges{}, err
	}

	prs, err := TakeWhileRecent(
		s.client.MergedPullRequests(ctx, owner, repo),
		func(pr github.PullRequest) time.Time { return pr.MergedAt },
		since,
	)
	if err != nil {
		return RepoChanges{}, err
	}

	releases, err := TakeWhileRecent(
		s.client.Releases(ctx, owner, repo),
		func(rel github.Release) time.Time { return rel.PublishedAt },
		since,
	)
	if err != nil {
		return RepoChanges{}, err
	}

	return RepoChanges{Repo: slug, PRs: prs, Releases: releases}, nil
}

// ScanProducts scans every configured repo and groups the results by
// product, in configuration order. Repos are scanned concurrently; each
// result lands in its own preassigned slot, so ordering never depends on
// which fetch finishes first. Products with no activity in the window are
// dropped from the result.
//
// Any repo failing aborts the whole run. A digest that silently omits a
// repo would read as "nothing happened there", which is worse than no
// digest at all.
func ScanProducts(ctx context.Context, scanner RepoScanner, products []config.Product, since time.Time) ([]ProductChanges, error) {
	results := make([][]RepoChanges, len(products))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)

	for i, product := range products {
		results[i] = make([]RepoChanges, len(product.Repos))
		for j, slug := range product.Repos {
			g.Go(func() error {
				changes, err := scanner.ScanRepo(ctx, slug, since)
				if err != nil {
					return err
				}
				results[i][j] = changes
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var aggregated []ProductChanges
	for i, product := range products {
		pc := ProductChanges{Product: product.Name, Repos: results[i]}
		if pc.HasChanges() {
			aggregated = append(aggregated, pc)
		}
	}
	return aggregated, nil
}

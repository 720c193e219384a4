package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reillywatson/changedigest/internal/cache"
	"github.com/reillywatson/changedigest/internal/github"
)

// countingScanner records how many real scans happened.
type countingScanner struct {
	calls int
	err   error
}

func (s *countingScanner) ScanRepo(ctx context.Context, slug string, since time.Time) (RepoChanges, error) {
	s.calls++
	if s.err != nil {
		return RepoChanges{}, s.err
	}
	return RepoChanges{
		Repo: slug,
		PRs:  []github.PullRequest{{Number: 1, Title: "cached change", MergedAt: since.Add(time.Hour)}},
	}, nil
}

func newTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCacheWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("Error creating cache: %v", err)
	}
	return c
}

func TestCachedScanner_SecondScanHitsCache(t *testing.T) {
	inner := &countingScanner{}
	scanner := NewCachedScanner(inner, newTestCache(t))
	since := daysAgo(7)

	first, err := scanner.ScanRepo(context.Background(), "org/repo-a", since)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := scanner.ScanRepo(context.Background(), "org/repo-a", since)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 real scan, got %d", inner.calls)
	}
	if len(second.PRs) != len(first.PRs) || second.Repo != first.Repo {
		t.Errorf("Expected cached result to match original, got %+v vs %+v", second, first)
	}
}

func TestCachedScanner_DistinctReposDoNotShareEntries(t *testing.T) {
	inner := &countingScanner{}
	scanner := NewCachedScanner(inner, newTestCache(t))
	since := daysAgo(7)

	if _, err := scanner.ScanRepo(context.Background(), "org/repo-a", since); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := scanner.ScanRepo(context.Background(), "org/repo-b", since); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if inner.calls != 2 {
		t.Errorf("Expected 2 real scans for 2 repos, got %d", inner.calls)
	}
}

func TestCachedScanner_ErrorsAreNotCached(t *testing.T) {
	scanErr := errors.New("transient failure")
	inner := &countingScanner{err: scanErr}
	scanner := NewCachedScanner(inner, newTestCache(t))
	since := daysAgo(7)

	if _, err := scanner.ScanRepo(context.Background(), "org/repo-a", since); !errors.Is(err, scanErr) {
		t.Fatalf("Expected scan error, got %v", err)
	}

	inner.err = nil
	changes, err := scanner.ScanRepo(context.Background(), "org/repo-a", since)
	if err != nil {
		t.Fatalf("Expected retry after failure to succeed, got %v", err)
	}
	if len(changes.PRs) != 1 {
		t.Errorf("Expected fresh scan result, got %+v", changes)
	}
	if inner.calls != 2 {
		t.Errorf("Expected failed scan not to be cached, got %d calls", inner.calls)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Products)
	assert.NotEmpty(t, cfg.Model)
	assert.Equal(t, 280, cfg.MaxTweetLength)
	assert.Equal(t, 4, cfg.MaxThreadPosts)
}

func TestLoadOverridesDefaultsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	raw := `{
		"products": [{"name": "My Product", "repos": ["org/repo-a", "org/repo-b"]}],
		"max_tweet_length": 500
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Products, 1)
	assert.Equal(t, "My Product", cfg.Products[0].Name)
	assert.Equal(t, []string{"org/repo-a", "org/repo-b"}, cfg.Products[0].Repos)
	assert.Equal(t, 500, cfg.MaxTweetLength)
	assert.Equal(t, 4, cfg.MaxThreadPosts, "unset fields keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestValidateRejectsBadSlug(t *testing.T) {
	cfg := Config{Products: []Product{
		{Name: "P", Repos: []string{"not-a-slug"}},
	}}
	assert.ErrorContains(t, cfg.Validate(), "owner/repo")
}

func TestValidateRejectsDuplicateRepoAcrossProducts(t *testing.T) {
	cfg := Config{Products: []Product{
		{Name: "First", Repos: []string{"org/shared"}},
		{Name: "Second", Repos: []string{"org/shared"}},
	}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org/shared")
	assert.Contains(t, err.Error(), "First")
	assert.Contains(t, err.Error(), "Second")
}

func TestValidateRejectsEmptyProduct(t *testing.T) {
	assert.Error(t, Config{Products: []Product{{Name: "", Repos: []string{"a/b"}}}}.Validate())
	assert.Error(t, Config{Products: []Product{{Name: "P"}}}.Validate())
	assert.Error(t, Config{}.Validate())
}

func TestLookbackDays(t *testing.T) {
	daily, err := LookbackDays("daily")
	require.NoError(t, err)
	assert.Equal(t, 1, daily)

	weekly, err := LookbackDays("weekly")
	require.NoError(t, err)
	assert.Equal(t, 14, weekly)

	_, err = LookbackDays("hourly")
	assert.Error(t, err)
}

func TestSplitSlug(t *testing.T) {
	owner, repo, err := SplitSlug("org/repo")
	require.NoError(t, err)
	assert.Equal(t, "org", owner)
	assert.Equal(t, "repo", repo)

	for _, bad := range []string{"", "org", "org/", "/repo", "a/b/c"} {
		_, _, err := SplitSlug(bad)
		assert.Error(t, err, "slug %q should be rejected", bad)
	}
}

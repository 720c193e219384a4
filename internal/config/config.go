package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Product maps a friendly product name to the GitHub repos that make it up.
// Changes from repos that share a product are aggregated into a single
// holistic update, so order matters: products and repos are reported in the
// order they are configured.
type Product struct {
	Name  string   `json:"name"`
	Repos []string `json:"repos"`
}

// Config drives one scanning and drafting run.
type Config struct {
	Products       []Product `json:"products"`
	Model          string    `json:"model"`
	MaxTweetLength int       `json:"max_tweet_length"`
	MaxThreadPosts int       `json:"max_thread_posts"`
}

// Lookback windows by frequency, in days. Override with -lookback-days.
var lookbackDays = map[string]int{
	"daily":  1,
	"weekly": 14,
}

// LookbackDays resolves a named frequency to a window in days.
func LookbackDays(frequency string) (int, error) {
	days, ok := lookbackDays[frequency]
	if !ok {
		return 0, fmt.Errorf("unknown frequency %q (expected daily or weekly)", frequency)
	}
	return days, nil
}

// DefaultProducts is the compiled-in monitoring set, used when no config
// file is given.
func DefaultProducts() []Product {
	return []Product{
		{Name: "OpenGradient Blockchain", Repos: []string{"OpenGradient/og-evm"}},
		{Name: "OpenGradient SDK", Repos: []string{"OpenGradient/OpenGradient-SDK"}},
		{Name: "OpenGradient Verifiable Inference", Repos: []string{
			"OpenGradient/x402",
			"OpenGradient/tee-gateway",
			"OpenGradient/llm-server",
			"OpenGradient/inference-facilitator",
		}},
		{Name: "OpenGradient MemSync", Repos: []string{
			"OpenGradient/memsync",
			"OpenGradient/mem-chat-api",
		}},
		{Name: "BitQuant", Repos: []string{
			"OpenGradient/bitquant",
			"OpenGradient/bitquant-app",
		}},
	}
}

// Load reads a config file and fills in defaults for anything unset. An
// empty path returns the defaults. The returned config is validated.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if len(cfg.Products) == 0 {
		cfg.Products = DefaultProducts()
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	if cfg.MaxTweetLength == 0 {
		cfg.MaxTweetLength = 280
	}
	if cfg.MaxThreadPosts == 0 {
		cfg.MaxThreadPosts = 4
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the product list before any scanning begins. A repo may
// appear under only one product: duplicates would either get scanned twice
// or reported under two headings, so they are rejected outright.
func (c Config) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("no products configured")
	}

	seen := make(map[string]string)
	for _, p := range c.Products {
		if p.Name == "" {
			return fmt.Errorf("product with empty name")
		}
		if len(p.Repos) == 0 {
			return fmt.Errorf("product %q has no repos", p.Name)
		}
		for _, slug := range p.Repos {
			if _, _, err := SplitSlug(slug); err != nil {
				return fmt.Errorf("product %q: %w", p.Name, err)
			}
			if other, ok := seen[slug]; ok {
				return fmt.Errorf("repo %s listed under both %q and %q", slug, other, p.Name)
			}
			seen[slug] = p.Name
		}
	}
	return nil
}

// SplitSlug splits an "owner/repo" identifier into its two parts.
func SplitSlug(slug string) (owner, repo string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: use 'owner/repo'", slug)
	}
	return parts[0], parts[1], nil
}

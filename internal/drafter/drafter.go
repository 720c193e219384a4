// Package drafter turns an aggregated change digest into proposed X posts
// using the Anthropic Messages API.
package drafter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reillywatson/changedigest/internal/config"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	defaultTimeout   = 120 * time.Second
	maxOutputTokens  = 2000
)

// Drafter is a minimal HTTP client for Anthropic's messages API.
type Drafter struct {
	apiKey         string
	model          string
	maxTweetLength int
	maxThreadPosts int
	baseURL        string
	httpClient     *http.Client
}

func New(apiKey string, cfg config.Config) *Drafter {
	return &Drafter{
		apiKey:         apiKey,
		model:          cfg.Model,
		maxTweetLength: cfg.MaxTweetLength,
		maxThreadPosts: cfg.MaxThreadPosts,
		baseURL:        defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Draft sends the formatted digest to the model and returns drafted posts.
func (d *Drafter) Draft(ctx context.Context, changesText string) (string, error) {
	payload := map[string]any{
		"model":      d.model,
		"max_tokens": maxOutputTokens,
		"system":     d.systemPrompt(),
		"messages": []map[string]string{
			{"role": "user", "content": buildUserPrompt(changesText)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal drafting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-api-key", d.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call anthropic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("anthropic responded with status %s", resp.Status)
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}

	var parts []string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("anthropic returned no text content")
	}

	return strings.Join(parts, "\n"), nil
}

func (d *Drafter) systemPrompt() string {
	return fmt.Sprintf(`You are the social media content strategist for OpenGradient — a company building
decentralized AI infrastructure.  Your job is to draft engaging posts for the
company's X (Twitter) account.

RULES:
1. You will receive a summary of recent GitHub activity grouped by product.
2. Produce ONE holistic update per product — do NOT create a separate post for
   every PR.  Synthesize the changes into a coherent narrative about what the
   product improved or shipped.
3. Keep each individual post under %d characters.
4. If there is enough material, you may propose a short thread (max %d
   posts) — but a single punchy tweet is preferred when possible.
5. Use a confident, technical-but-accessible tone.  Avoid generic hype.
   Highlight concrete capabilities or improvements.
6. Include relevant hashtags sparingly (1-2 max, e.g. #DecentralizedAI #OpenGradient).
7. If a release is included, mention the version.
8. Output ONLY the proposed posts — no extra commentary.  Use this format:

   === <Product Name> ===
   [Post 1]
   ---
   [Post 2]  (if thread)
   ---
   ...

9. If there are no meaningful changes worth posting about, say so briefly.`,
		d.maxTweetLength, d.maxThreadPosts)
}

func buildUserPrompt(changesText string) string {
	var b strings.Builder
	b.WriteString("Here are the recent GitHub changes for OpenGradient, grouped by product.\n")
	b.WriteString("Draft holistic X posts for each product that has notable updates.\n\n")
	b.WriteString(changesText)
	return b.String()
}

package scan

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Body previews are hard-capped so the digest stays a bounded prompt input.
// The cap can cut mid-word; readability loses to prompt size here.
const (
	releaseBodyBudget = 200
	prBodyBudget      = 150
)

// emptyDigest is returned instead of an empty string so the downstream
// drafter never has to guess what empty input means.
const emptyDigest = "No notable changes found in the lookback window."

// FormatDigest renders aggregated product changes into a single text block
// for the drafting prompt. Products and repos appear in input order; repos
// with no activity are omitted from their product's section.
func FormatDigest(products []ProductChanges) string {
	if len(products) == 0 {
		return emptyDigest
	}

	var sections []string

	for _, product := range products {
		lines := []string{fmt.Sprintf("## %s", product.Product)}

		for _, repo := range product.Repos {
			if !repo.HasChanges() {
				continue
			}
			lines = append(lines, fmt.Sprintf("\n### Repo: %s", repo.Repo))

			if len(repo.Releases) > 0 {
				lines = append(lines, "\n**Releases:**")
				for _, rel := range repo.Releases {
					lines = append(lines, fmt.Sprintf("- %s (%s) — %s", rel.Name, rel.Tag, truncate(rel.Body, releaseBodyBudget)))
				}
			}

			if len(repo.PRs) > 0 {
				lines = append(lines, fmt.Sprintf("\n**Merged PRs (%d):**", len(repo.PRs)))
				for _, pr := range repo.PRs {
					labelStr := ""
					if len(pr.Labels) > 0 {
						labelStr = fmt.Sprintf(" [%s]", strings.Join(pr.Labels, ", "))
					}
					lines = append(lines, fmt.Sprintf("- #%d: %s%s", pr.Number, pr.Title, labelStr))

					preview := strings.ReplaceAll(truncate(pr.Body, prBodyBudget), "\n", " ")
					if preview != "" {
						lines = append(lines, "  "+preview)
					}
				}
			}
		}

		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// truncate caps s at limit bytes, backing up to a rune boundary so the
// result is always valid UTF-8.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

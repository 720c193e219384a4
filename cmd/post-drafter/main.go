package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/reillywatson/changedigest/internal/cache"
	"github.com/reillywatson/changedigest/internal/config"
	"github.com/reillywatson/changedigest/internal/drafter"
	"github.com/reillywatson/changedigest/internal/github"
	"github.com/reillywatson/changedigest/internal/scan"
)

func main() {
	// Define command line flags
	frequency := flag.String("frequency", "weekly", "How far back to look for changes: daily or weekly")
	lookbackDays := flag.Int("lookback-days", 0, "Override lookback window in days")
	configPath := flag.String("config", "", "Path to a JSON config file (defaults to the compiled-in product list)")
	output := flag.String("output", "", "Write proposed content to this file instead of stdout")
	dryRun := flag.Bool("dry-run", false, "Only scan GitHub, skip content drafting")
	noCache := flag.Bool("no-cache", false, "Bypass the scan cache")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall run timeout")

	// Parse flags
	flag.Parse()

	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	lookback := *lookbackDays
	if lookback <= 0 {
		lookback, err = config.LookbackDays(*frequency)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Get GitHub token from environment
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		log.Fatal("GITHUB_TOKEN environment variable not set")
	}

	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	if anthropicKey == "" && !*dryRun {
		log.Fatal("ANTHROPIC_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var scanner scan.RepoScanner = scan.NewScanner(github.NewClient(token))
	if !*noCache {
		cacheImpl, err := cache.NewDefaultCache()
		if err != nil {
			log.Fatalf("Error creating cache: %v", err)
		}
		defer cacheImpl.Close()
		scanner = scan.NewCachedScanner(scanner, cacheImpl)
	}

	since := time.Now().UTC().AddDate(0, 0, -lookback)

	fmt.Fprintf(os.Stderr, "Scanning GitHub repos (lookback: %d days)...\n", lookback)
	products, err := scan.ScanProducts(ctx, scanner, cfg.Products, since)
	if err != nil {
		log.Fatalf("Error scanning repos: %v", err)
	}

	draft := drafter.New(anthropicKey, cfg).Draft
	content, ok, err := producePosts(ctx, products, *dryRun, draft, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("Error drafting content: %v", err)
	}
	if !ok {
		return
	}

	writeOutput(*output, content)
}

// producePosts runs the post-scan stage. An empty scan means there is
// nothing to post, dry run or not; a dry run prints the raw digest and
// stops. ok reports whether content was drafted and should be written.
func producePosts(ctx context.Context, products []scan.ProductChanges, dryRun bool, draft func(context.Context, string) (string, error), out, errOut io.Writer) (content string, ok bool, err error) {
	if len(products) == 0 {
		fmt.Fprintln(errOut, "No notable changes found. Nothing to post.")
		return "", false, nil
	}

	digest := scan.FormatDigest(products)

	if dryRun {
		fmt.Fprintln(out, "\n--- Raw changes (dry-run) ---")
		fmt.Fprintln(out, digest)
		return "", false, nil
	}

	fmt.Fprintln(errOut, "Drafting content...")
	content, err = draft(ctx, digest)
	if err != nil {
		return "", false, err
	}
	return content, true, nil
}

func writeOutput(path, content string) {
	if path != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatalf("Error writing output file: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Content written to %s\n", path)
		return
	}

	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("PROPOSED X POSTS")
	fmt.Println(banner + "\n")
	fmt.Println(content)
}

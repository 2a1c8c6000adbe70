// Package wishwatch watches a paginated web listing for changes.
//
// One run fetches the listing (following its continuation pages),
// diffs the extracted items against the previously persisted snapshot,
// delivers a human-readable notification to a webhook, and persists the
// new snapshot atomically.
//
// Example usage:
//
//	cfg := wishwatch.DefaultConfig()
//	cfg.ListURL = "https://shop.example/hz/wishlist/ls/XXXXXXXXXX"
//	cfg.WebhookURL = "https://hooks.example/T000/B000/xxxx"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	report := wishwatch.Run(context.Background(), cfg, zerolog.Nop())
//	if report.Failed() {
//	    log.Printf("run failed (%s): %v", report.Kind, report.Err)
//	}
package wishwatch

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/adapters/fs"
	webhookhttp "github.com/ayumu-labs/wishwatch/internal/adapters/http"
	"github.com/ayumu-labs/wishwatch/internal/cliconfig"
	"github.com/ayumu-labs/wishwatch/internal/markup"
	"github.com/ayumu-labs/wishwatch/internal/watcher"
)

// Config holds the full watcher configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Report is the explicit completion result of one run.
type Report = watcher.Report

// Run outcomes.
const (
	OutcomeBaseline  = watcher.OutcomeBaseline
	OutcomeChanged   = watcher.OutcomeChanged
	OutcomeUnchanged = watcher.OutcomeUnchanged
	OutcomeFailed    = watcher.OutcomeFailed
)

// DefaultConfig returns a Config with sensible default values.
// At minimum, ListURL and WebhookURL must be set before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run executes one complete watch cycle with the given configuration
// and returns its Report. It never panics and never fails the caller:
// every failure is classified into the Report.
func Run(ctx context.Context, cfg Config, log zerolog.Logger) Report {
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	fetcher := watcher.NewHTTPFetcher(client, watcher.FetcherOptions{
		Attempts:       cfg.FetchAttempts,
		BackoffBase:    cfg.BackoffBase,
		RequestRate:    cfg.RequestRate,
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
	}, log)

	parser := markup.Parser{}
	extractor := watcher.NewExtractor(parser, log)
	paginator := watcher.NewPaginator(fetcher, parser, extractor, cfg.MaxPages, log)

	repo := fs.NewSnapshotFileRepository(cfg.StateDir, cfg.StateFile)
	notifier := webhookhttp.NewWebhookNotifier(client, cfg.WebhookURL, log)

	w := watcher.New(watcher.Config{
		ListURL:      cfg.ListURL,
		BaselineOnly: cfg.BaselineOnly,
	}, paginator, repo, notifier, log)

	return w.Run(ctx)
}

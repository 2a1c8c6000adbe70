// Package watcher implements the change-detection pipeline for one
// tracked listing: paginated fetch, item extraction, diff against the
// persisted snapshot, webhook notification, and snapshot persistence.
package watcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayumu-labs/wishwatch/internal/domain"
	"github.com/ayumu-labs/wishwatch/internal/ports"
)

// Config holds the resolved values the pipeline consumes. It is built
// once at process start and passed in; no component reads ambient state.
type Config struct {
	// ListURL is the listing start page.
	ListURL string

	// BaselineOnly suppresses the first-run notification.
	BaselineOnly bool
}

// Outcome names how a run ended.
type Outcome string

const (
	OutcomeBaseline  Outcome = "baseline"
	OutcomeChanged   Outcome = "changed"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Report is the explicit completion result of one run. The run outcome
// is separate from the process status: a classified failure still
// completes, so a transient scraping problem never breaks the schedule
// that invokes the watcher.
type Report struct {
	Outcome Outcome

	// ItemCount is the number of items in the new snapshot, when one
	// was collected.
	ItemCount int

	// Kind classifies Err; KindNone on success.
	Kind domain.Kind

	// Err is the failure that ended the run, nil on success.
	Err error
}

// Failed reports whether the run ended in a classified failure.
func (r Report) Failed() bool { return r.Err != nil }

// Watcher is the top-level supervisor for one run.
type Watcher struct {
	cfg       Config
	paginator *Paginator
	repo      ports.SnapshotRepository
	notifier  ports.Notifier
	now       func() time.Time
	log       zerolog.Logger
}

// New wires a Watcher from its collaborators.
func New(cfg Config, paginator *Paginator, repo ports.SnapshotRepository, notifier ports.Notifier, log zerolog.Logger) *Watcher {
	return &Watcher{
		cfg:       cfg,
		paginator: paginator,
		repo:      repo,
		notifier:  notifier,
		now:       time.Now,
		log:       log,
	}
}

// Run executes one complete watch cycle and always returns a Report.
// Any failure is classified into the error taxonomy and reported via a
// best-effort error notification whose own failure is only logged, so a
// broken webhook can never mask the original failure.
func (w *Watcher) Run(ctx context.Context) Report {
	report := w.runPipeline(ctx)
	if report.Err != nil {
		w.log.Error().Err(report.Err).Str("kind", string(report.Kind)).Msg("watcher run failed")
		if nerr := w.notifier.Notify(ctx, formatErrorMessage(report.Err)); nerr != nil {
			w.log.Error().Err(nerr).Msg("failed to deliver error notification")
		}
	}
	return report
}

func (w *Watcher) runPipeline(ctx context.Context) Report {
	items, err := w.paginator.CollectAll(ctx, w.cfg.ListURL)
	if err != nil {
		return failedReport(err)
	}

	snap := domain.Snapshot{CapturedAt: w.now().UTC(), Items: items}

	prev, err := w.repo.Load(ctx)
	if err != nil {
		return failedReport(err)
	}

	// Baseline run: nothing to diff against. Persist the first snapshot
	// and announce it unless baseline-only mode keeps the first run quiet.
	if prev == nil {
		if err := w.repo.Save(ctx, snap); err != nil {
			return failedReport(err)
		}
		w.log.Info().Int("items", len(items)).Msg("baseline snapshot saved")
		if !w.cfg.BaselineOnly {
			if err := w.notifier.Notify(ctx, baselineMessage); err != nil {
				return failedReport(err)
			}
		}
		return Report{Outcome: OutcomeBaseline, ItemCount: len(items)}
	}

	diff := domain.DiffItems(prev.Items, snap.Items)

	var text string
	if diff.HasChanges() {
		text = formatDiffMessage(diff, snap.Items)
	} else {
		text = formatNoChangeMessage(snap.Items)
	}

	// Persist after the delivery attempt, whatever its result: a
	// notification failure must not cost us the new snapshot.
	notifyErr := w.notifier.Notify(ctx, text)
	if err := w.repo.Save(ctx, snap); err != nil {
		return failedReport(err)
	}
	if notifyErr != nil {
		return failedReport(notifyErr)
	}

	outcome := OutcomeUnchanged
	if diff.HasChanges() {
		outcome = OutcomeChanged
		w.log.Info().
			Int("added", len(diff.Added)).
			Int("removed", len(diff.Removed)).
			Int("price_changes", len(diff.PriceChanges)).
			Msg("listing changed")
	} else {
		w.log.Info().Int("items", len(items)).Msg("listing unchanged")
	}
	return Report{Outcome: outcome, ItemCount: len(items)}
}

func failedReport(err error) Report {
	return Report{Outcome: OutcomeFailed, Kind: domain.KindOf(err), Err: err}
}

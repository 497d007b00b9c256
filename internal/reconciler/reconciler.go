package reconciler

import (
	"context"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/internal/datasource"
	"github.com/redvlock/agenta/internal/store"
	"github.com/redvlock/agenta/pkg/app"
	ltime "github.com/redvlock/agenta/pkg/time"
)

// Reconciler applies status batches to the store and decides when a partial
// update is not enough. A status-only fetch cannot carry the fields that
// only exist at completion (aggregated results, cost, latency), so any batch
// in which at least one id reaches a terminal status triggers exactly one
// full refresh of the dataset.
type Reconciler struct {
	store      *store.Store
	datasource datasource.EvaluationStore
	appID      string
	watch      ltime.Watch
}

func New(st *store.Store, ds datasource.EvaluationStore, appID string, watch ltime.Watch) *Reconciler {
	if watch == nil {
		watch = ltime.NewWallWatch()
	}
	return &Reconciler{
		store:      st,
		datasource: ds,
		appID:      appID,
		watch:      watch,
	}
}

// ApplyBatch merges one poll batch into the store. Per-id fetch errors and
// unknown ids are logged and skipped; neither ends the session. Errors from
// the follow-up full refresh are logged and swallowed, the next terminal
// transition or delete will retry it.
func (r *Reconciler) ApplyBatch(ctx context.Context, results []datasource.StatusResult) {
	updates := make([]store.StatusUpdate, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			log.Printf("status fetch for evaluation %s failed: %s", result.ID, result.Err)
			continue
		}
		updates = append(updates, store.StatusUpdate{ID: result.ID, Status: result.Status})
	}

	report := r.store.ApplyStatuses(updates, r.watch.Now())
	for _, id := range report.Unknown {
		log.Debugf("ignoring status for unknown evaluation %s", id)
	}

	if len(report.CompletedIDs) == 0 {
		return
	}

	log.Printf("%d evaluations completed, refreshing dataset", len(report.CompletedIDs))
	if err := r.Refresh(ctx); err != nil {
		log.Printf("full refresh after completion failed: %s", err)
	}
}

// Refresh fetches the authoritative dataset and replaces the store contents.
func (r *Reconciler) Refresh(ctx context.Context) error {
	evals, err := r.datasource.ListEvaluations(ctx, r.appID)
	if err != nil {
		return err
	}
	r.store.Replace(evals)
	return nil
}

// Delete removes evaluations from the backend and the store. The full
// refresh runs regardless of partial failure, on a background context so a
// cancelled caller cannot leave the dataset stale.
func (r *Reconciler) Delete(ctx context.Context, ids []string) error {
	var errs *multierror.Error

	if err := r.datasource.DeleteEvaluations(ctx, ids); err != nil {
		errs = multierror.Append(errs, err)
	}

	r.store.Delete(ids)

	refreshCtx, cancel := app.BackgroundTimeoutContext()
	defer cancel()
	if err := r.Refresh(refreshCtx); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}

// Bootstrap performs the initial full fetch. Unlike the polling path it may
// retry, the service has no dataset to serve until it succeeds once.
func (r *Reconciler) Bootstrap(ctx context.Context) error {
	return retry.Do(func() error {
		return r.Refresh(ctx)
	},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(ltime.JitteredDuration(500*time.Millisecond)),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("bootstrap fetch attempt %d failed: %s", n+1, err)
		}),
	)
}

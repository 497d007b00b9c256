package poller

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/redvlock/agenta/internal/datasource"
	"github.com/redvlock/agenta/pkg/app"
	"github.com/redvlock/agenta/pkg/poll"
	ltime "github.com/redvlock/agenta/pkg/time"
)

// BatchApplier consumes one complete status batch. The reconciler implements
// it.
type BatchApplier interface {
	ApplyBatch(ctx context.Context, results []datasource.StatusResult)
}

// StatusPoller fans a status query out across the session's target ids,
// waits for every response, and hands the batch to the reconciler. Per-id
// failures travel inside the batch; they never abort the other fetches.
type StatusPoller struct {
	fetcher    datasource.StatusFetcher
	reconciler BatchApplier
}

var _ poll.Poller[string] = &StatusPoller{}

func NewStatusPoller(fetcher datasource.StatusFetcher, reconciler BatchApplier) *StatusPoller {
	return &StatusPoller{
		fetcher:    fetcher,
		reconciler: reconciler,
	}
}

func (p *StatusPoller) Name() string {
	return "evaluation-status"
}

func (p *StatusPoller) Poll(ctx context.Context, ids []string) {
	results := make([]datasource.StatusResult, len(ids))

	var group errgroup.Group
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			status, err := p.fetcher.FetchStatus(ctx, id)
			results[i] = datasource.StatusResult{ID: id, Status: status, Err: err}
			return nil
		})
	}
	group.Wait()

	// A cancelled session's late batch is discarded, never applied.
	if ctx.Err() != nil {
		log.Debugf("discarding status batch of %d results for cancelled session", len(results))
		return
	}

	p.reconciler.ApplyBatch(ctx, results)
}

// NewController builds the poll controller that owns the status sessions.
func NewController(app *app.Instance, cfg *Config, statusPoller *StatusPoller) (*poll.Controller[string], error) {
	pollConfig, err := poll.NewConfig(cfg.Interval)
	if err != nil {
		return nil, err
	}
	return poll.NewController[string](app.Context(), pollConfig, statusPoller, ltime.WallTickerFactory), nil
}

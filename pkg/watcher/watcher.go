package watcher

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

// Watcher refreshes every board on a fixed interval, each refresh is an independent pipeline run
type Watcher struct {
	Boards      []config.Board
	RefreshRate time.Duration

	Pipeline *pipeline.Pipeline
}

func (w *Watcher) Run(ctx context.Context) error {
	log.Info().Int("boards", len(w.Boards)).Dur("refresh", w.RefreshRate).Msg("Starting departures watcher")

	for {
		startTime := time.Now()

		w.RefreshAll(ctx)

		waitTime := w.RefreshRate - time.Since(startTime)
		if waitTime < 0 {
			log.Warn().Dur("refresh", w.RefreshRate).Str("took", time.Since(startTime).String()).Msg("Refresh took longer than the refresh rate")
			waitTime = 0
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// RefreshAll runs every board once and returns the results in board order
func (w *Watcher) RefreshAll(ctx context.Context) []pipeline.Result {
	boardPool := pool.New().WithMaxGoroutines(5)

	results := make([]pipeline.Result, len(w.Boards))

	for i, board := range w.Boards {
		boardPool.Go(func() {
			// Delivery failures are logged by the pipeline, the next refresh sends a fresh result
			results[i], _ = w.Pipeline.GetData(ctx, pipeline.Request{
				Identifier: board.Identifier,
				Config:     board.Config,
			})
		})
	}
	boardPool.Wait()

	return results
}

package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/ovdepartures/pkg/pipeline"
	"github.com/travigo/ovdepartures/pkg/util"
)

// RequestBatchConsumer runs the pipeline for every request in a batch. Each request delivers its
// own result through the pipeline Notifier and is only acked once that delivery succeeded.
type RequestBatchConsumer struct {
	Pipeline *pipeline.Pipeline

	MaxConcurrentRequests int
	RequestTimeout        time.Duration
}

func NewRequestBatchConsumer(p *pipeline.Pipeline) *RequestBatchConsumer {
	return &RequestBatchConsumer{
		Pipeline:              p,
		MaxConcurrentRequests: 10,
		RequestTimeout:        30 * time.Second,
	}
}

func (c *RequestBatchConsumer) Consume(batch rmq.Deliveries) {
	requestPool := pool.New().WithMaxGoroutines(c.maxConcurrentRequests())

	for _, delivery := range batch {
		var request pipeline.Request
		if err := json.Unmarshal([]byte(delivery.Payload()), &request); err != nil || request.Identifier == "" {
			log.Error().Err(err).Str("payload", util.TrimString(delivery.Payload(), 256)).Msg("Rejecting invalid departures request")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject delivery")
			}
			continue
		}

		requestPool.Go(func() {
			ctx := context.Background()
			if c.RequestTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
				defer cancel()
			}

			if _, err := c.Pipeline.GetData(ctx, request); err != nil {
				// Undelivered, hand it back so the display still gets an outcome
				if err := delivery.Push(); err != nil {
					log.Error().Err(err).Str("identifier", request.Identifier).Msg("Failed to push back delivery")
				}
				return
			}

			if err := delivery.Ack(); err != nil {
				log.Error().Err(err).Str("identifier", request.Identifier).Msg("Failed to ack delivery")
			}
		})
	}

	requestPool.Wait()
}

func (c *RequestBatchConsumer) maxConcurrentRequests() int {
	if c.MaxConcurrentRequests > 0 {
		return c.MaxConcurrentRequests
	}

	return 1
}

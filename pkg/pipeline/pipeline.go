package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/departures"
	"github.com/travigo/ovdepartures/pkg/ovapi"
)

const DefaultUserAgent = "ovdepartures/1.0"

// Notifier delivers results to the display layer
type Notifier interface {
	Notify(ctx context.Context, result Result) error
}

type Pipeline struct {
	// Defaults fill anything the request config leaves unset
	Defaults config.Config

	HTTPClient *http.Client
	UserAgent  string

	Notifier Notifier
}

// GetData runs the request and delivers its Result through the Notifier. The returned error is
// only set when delivery failed, a failed request is still a delivered Result.
func (p *Pipeline) GetData(ctx context.Context, request Request) (Result, error) {
	result := p.Run(ctx, request)

	if p.Notifier != nil {
		if err := p.Notifier.Notify(ctx, result); err != nil {
			log.Error().Err(err).Str("identifier", request.Identifier).Msg("Failed to deliver departures result")
			return result, fmt.Errorf("deliver result %s: %w", request.Identifier, err)
		}
	}

	return result, nil
}

// Run fetches both endpoint categories concurrently, merges and aggregates them.
// Any failure turns into a failed Result, there is never a partial one.
func (p *Pipeline) Run(ctx context.Context, request Request) Result {
	startTime := time.Now()

	data, err := p.departures(ctx, request.Config)

	indexOutcome(request.Identifier, startTime, data, err)

	if err != nil {
		log.Error().Err(err).Str("identifier", request.Identifier).Msg("Failed to get departures")

		return Result{
			Identifier: request.Identifier,
			Error:      err.Error(),
		}
	}

	log.Debug().
		Str("identifier", request.Identifier).
		Int("stops", len(data)).
		Int("departures", data.Count()).
		Str("latency", time.Since(startTime).String()).
		Msg("Retrieved departures")

	return Result{
		Identifier: request.Identifier,
		Data:       data,
	}
}

func (p *Pipeline) departures(ctx context.Context, requestConfig config.Config) (departures.Departures, error) {
	cfg := requestConfig.ApplyDefaults(p.Defaults).ApplyDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := departures.CompileFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	client := &ovapi.Client{
		APIBase:              cfg.APIBase,
		TimingPointEndpoint:  cfg.TimingPointEndpoint,
		StopAreaEndpoint:     cfg.StopAreaEndpoint,
		ShowOnlyDepartures:   config.Enabled(cfg.ShowOnlyDepartures),
		DeparturesOnlySuffix: cfg.DeparturesOnlySuffix,
		UserAgent:            p.userAgent(),
		HTTPClient:           p.HTTPClient,
	}

	var timingPoints ovapi.TimingPointData
	var stopAreas ovapi.StopAreaData

	fetchPool := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	fetchPool.Go(func(ctx context.Context) error {
		var err error
		timingPoints, err = client.FetchTimingPoints(ctx, cfg.TimingPointCode)
		return err
	})
	fetchPool.Go(func(ctx context.Context) error {
		var err error
		stopAreas, err = client.FetchStopAreas(ctx, cfg.StopAreaCode)
		return err
	})
	if err := fetchPool.Wait(); err != nil {
		return nil, err
	}

	merged := ovapi.Merge(timingPoints, stopAreas)

	return departures.Aggregate(merged, departures.Options{
		Destinations: cfg.Destinations,
		ShowTownName: config.Enabled(cfg.ShowTownName),
		Debug:        config.Enabled(cfg.Debug),
		Filter:       filter,
	})
}

func (p *Pipeline) userAgent() string {
	if p.UserAgent != "" {
		return p.UserAgent
	}

	return DefaultUserAgent
}

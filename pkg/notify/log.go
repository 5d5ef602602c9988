package notify

import (
	"context"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/pipeline"
)

// LogNotifier writes results to the log, used when running without a display layer
type LogNotifier struct {
	Pretty bool
}

func (n LogNotifier) Notify(_ context.Context, result pipeline.Result) error {
	if result.Failed() {
		log.Error().Str("identifier", result.Identifier).Str("error", result.Error).Msg("Departures request failed")
		return nil
	}

	log.Info().
		Str("identifier", result.Identifier).
		Int("stops", len(result.Data)).
		Int("departures", result.Data.Count()).
		Msg("Departures updated")

	if n.Pretty {
		pretty.Println(result.Data)
	}

	return nil
}

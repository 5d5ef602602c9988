package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/departures"
	"github.com/travigo/ovdepartures/pkg/elastic_client"
)

type OutcomeElasticEvent struct {
	Timestamp  time.Time
	Identifier string

	Success    bool
	FailReason string

	Stops      int
	Departures int

	DurationMilliseconds int64
}

func indexOutcome(identifier string, startTime time.Time, data departures.Departures, err error) {
	if !elastic_client.Enabled() {
		return
	}

	event := OutcomeElasticEvent{
		Timestamp:            startTime,
		Identifier:           identifier,
		Success:              err == nil,
		Stops:                len(data),
		Departures:           data.Count(),
		DurationMilliseconds: time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		event.FailReason = err.Error()
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal outcome event")
		return
	}

	elastic_client.IndexRequest(fmt.Sprintf("ovdepartures-outcomes-%s", startTime.Format("2006-01")), bytes.NewReader(eventBytes))
}

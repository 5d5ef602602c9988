package departures

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/ovdepartures/pkg/ovapi"
	"github.com/travigo/ovdepartures/pkg/util"
	"golang.org/x/exp/slices"
)

const unknownValue = "?"

type Options struct {
	// Destinations restricts the output to passes with one of these DestinationCodes, empty means everything
	Destinations []string
	ShowTownName bool
	Debug        bool

	Filter *Filter
}

// Aggregate turns the merged timing point data into departure lists keyed by display stop name
func Aggregate(merged ovapi.TimingPointData, opts Options) (Departures, error) {
	logger := log.Logger
	if opts.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	departures := Departures{}

	for _, timingPointCode := range util.SortedKeys(merged) {
		stopRecord := merged[timingPointCode]

		if stopRecord == nil || stopRecord.Stop == nil {
			return nil, &DataShapeError{TimingPointCode: timingPointCode, Field: "Stop"}
		}
		if stopRecord.Passes == nil {
			return nil, &DataShapeError{TimingPointCode: timingPointCode, Field: "Passes"}
		}

		stopName := DisplayName(stopRecord.Stop, opts.ShowTownName)
		stopWheelChairAccessible := AccessibilityFlag(stopRecord.Stop.TimingPointWheelChairAccessible)
		stopVisualAccessible := AccessibilityFlag(stopRecord.Stop.TimingPointVisualAccessible)

		for _, passID := range util.SortedKeys(stopRecord.Passes) {
			pass := stopRecord.Passes[passID]

			if pass == nil {
				return nil, &DataShapeError{TimingPointCode: timingPointCode, PassID: passID, Field: "Pass"}
			}
			if pass.ExpectedDepartureTime == "" {
				return nil, &DataShapeError{TimingPointCode: timingPointCode, PassID: passID, Field: "ExpectedDepartureTime"}
			}

			destination := util.FirstNonEmpty(pass.DestinationName50, unknownValue)
			operator := util.FirstNonEmpty(pass.OperatorCode, pass.DataOwnerCode, unknownValue)

			if len(opts.Destinations) > 0 && !slices.Contains(opts.Destinations, pass.DestinationCode) {
				logger.Debug().
					Str("stop", stopName).
					Str("line", pass.LinePublicNumber).
					Str("destination", destination).
					Msg("Skipping departure not matching destination filter")
				continue
			}

			record := &DepartureRecord{}
			if err := copier.Copy(record, pass); err != nil {
				return nil, fmt.Errorf("copy pass %s: %w", passID, err)
			}

			record.LineWheelChairAccessible = AccessibilityFlag(pass.WheelChairAccessible)
			record.TimingPointWheelChairAccessible = stopWheelChairAccessible
			record.TimingPointVisualAccessible = stopVisualAccessible
			record.Operator = operator
			record.Destination = destination

			matches, err := opts.Filter.Match(record)
			if err != nil {
				return nil, err
			}
			if !matches {
				logger.Debug().
					Str("stop", stopName).
					Str("line", pass.LinePublicNumber).
					Str("destination", destination).
					Str("filter", opts.Filter.Expression).
					Msg("Skipping departure not matching filter expression")
				continue
			}

			departures[stopName] = append(departures[stopName], record)
		}
	}

	for _, records := range departures {
		slices.SortStableFunc(records, func(a, b *DepartureRecord) int {
			return strings.Compare(a.ExpectedDepartureTime, b.ExpectedDepartureTime)
		})
	}

	return departures, nil
}

func DisplayName(stop *ovapi.StopInfo, showTownName bool) string {
	if showTownName {
		return fmt.Sprintf("%s, %s", stop.TimingPointTown, stop.TimingPointName)
	}

	return stop.TimingPointName
}

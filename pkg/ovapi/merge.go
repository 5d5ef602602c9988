package ovapi

import (
	"github.com/travigo/ovdepartures/pkg/util"
)

// Merge flattens the stop area results into the timing point results. Entries coming from a
// stop area replace any timing point fetched directly under the same code.
func Merge(timingPoints TimingPointData, stopAreas StopAreaData) TimingPointData {
	merged := make(TimingPointData, len(timingPoints))

	for timingPointCode, stopRecord := range timingPoints {
		merged[timingPointCode] = stopRecord
	}

	// Sorted so a code present in two stop areas always resolves the same way
	for _, stopAreaCode := range util.SortedKeys(stopAreas) {
		for timingPointCode, stopRecord := range stopAreas[stopAreaCode] {
			merged[timingPointCode] = stopRecord
		}
	}

	return merged
}

package departures

import "fmt"

// DataShapeError means the upstream feed returned a record that is missing a field aggregation depends on
type DataShapeError struct {
	TimingPointCode string
	PassID          string
	Field           string
}

func (e *DataShapeError) Error() string {
	if e.PassID != "" {
		return fmt.Sprintf("timing point %s pass %s: missing %s", e.TimingPointCode, e.PassID, e.Field)
	}

	return fmt.Sprintf("timing point %s: missing %s", e.TimingPointCode, e.Field)
}

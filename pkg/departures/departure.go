package departures

// DepartureRecord is the display ready shape of a single pass at a stop.
// The compact group is what the web API returns for ?view=compact.
type DepartureRecord struct {
	TargetDepartureTime   string `groups:"basic"`
	ExpectedDepartureTime string `groups:"basic,compact"`

	TransportType            string `groups:"basic"`
	LinePublicNumber         string `groups:"basic,compact"`
	LineWheelChairAccessible int    `groups:"basic"`

	TimingPointName                 string `groups:"basic"`
	TimingPointWheelChairAccessible int    `groups:"basic"`
	TimingPointVisualAccessible     int    `groups:"basic"`

	Operator            string `groups:"basic"`
	LastUpdateTimeStamp string `groups:"basic"`
	Destination         string `groups:"basic,compact"`
}

// Departures maps the display stop name to its departures ordered by ExpectedDepartureTime.
// Stops without any departures are never present.
type Departures map[string][]*DepartureRecord

func (d Departures) Count() int {
	count := 0
	for _, records := range d {
		count += len(records)
	}

	return count
}

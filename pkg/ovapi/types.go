package ovapi

// TimingPointData is the shape returned by the timing point endpoint, keyed by TimingPointCode.
type TimingPointData map[string]*StopRecord

// StopAreaData is the shape returned by the stop area endpoint, keyed by StopAreaCode.
type StopAreaData map[string]TimingPointData

type StopRecord struct {
	Stop   *StopInfo
	Passes map[string]*PassInfo
}

type StopInfo struct {
	TimingPointCode string
	TimingPointName string
	TimingPointTown string
	StopAreaCode    string

	Latitude  float64
	Longitude float64

	TimingPointWheelChairAccessible string
	TimingPointVisualAccessible     string
}

type PassInfo struct {
	DataOwnerCode string
	OperatorCode  string

	LinePublicNumber   string
	LinePlanningNumber string
	LineName           string
	LineDirection      int
	TransportType      string

	DestinationName50 string
	DestinationCode   string

	TimingPointName string
	JourneyNumber   int
	TripStopStatus  string

	TargetDepartureTime   string
	ExpectedDepartureTime string
	LastUpdateTimeStamp   string

	WheelChairAccessible string
}

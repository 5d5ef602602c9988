package pipeline

import (
	"encoding/json"

	"github.com/travigo/ovdepartures/pkg/config"
	"github.com/travigo/ovdepartures/pkg/departures"
)

// Request is the inbound message from the display layer
type Request struct {
	Identifier string        `json:"identifier"`
	Config     config.Config `json:"config"`
}

// Result is delivered exactly once per Request, carrying either Data or Error
type Result struct {
	Identifier string                `json:"identifier"`
	Data       departures.Departures `json:"data,omitempty"`
	Error      string                `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return r.Error != ""
}

// MarshalJSON always includes data on success, even when no stop has departures, and never on failure
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Identifier string `json:"identifier"`
			Error      string `json:"error"`
		}{r.Identifier, r.Error})
	}

	data := r.Data
	if data == nil {
		data = departures.Departures{}
	}

	return json.Marshal(struct {
		Identifier string                `json:"identifier"`
		Data       departures.Departures `json:"data"`
	}{r.Identifier, data})
}

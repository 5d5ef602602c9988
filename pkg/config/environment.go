package config

import (
	"strings"

	"github.com/travigo/ovdepartures/pkg/util"
)

// FromEnvironment returns Defaults overridden by any OVDEPARTURES_* variables that are set
func FromEnvironment(env map[string]string) Config {
	c := Defaults()

	c.APIBase = util.GetEnvironmentVariable(env, "OVDEPARTURES_API_BASE", c.APIBase)
	c.TimingPointEndpoint = util.GetEnvironmentVariable(env, "OVDEPARTURES_TIMING_POINT_ENDPOINT", c.TimingPointEndpoint)
	c.StopAreaEndpoint = util.GetEnvironmentVariable(env, "OVDEPARTURES_STOP_AREA_ENDPOINT", c.StopAreaEndpoint)
	c.DeparturesOnlySuffix = util.GetEnvironmentVariable(env, "OVDEPARTURES_DEPARTURES_ONLY_SUFFIX", c.DeparturesOnlySuffix)

	if destinations := env["OVDEPARTURES_DESTINATIONS"]; destinations != "" {
		c.Destinations = util.RemoveDuplicateStrings(strings.Split(destinations, ","), nil)
	}

	return c
}

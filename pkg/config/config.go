package config

import (
	"errors"

	"github.com/travigo/ovdepartures/pkg/util"
)

const (
	DefaultAPIBase              = "http://v0.ovapi.nl"
	DefaultTimingPointEndpoint  = "tpc"
	DefaultStopAreaEndpoint     = "stopareacode"
	DefaultDeparturesOnlySuffix = "departures"
)

// Config is the per board request configuration sent along with every departures request
type Config struct {
	APIBase             string `json:"apiBase" yaml:"apiBase" validate:"required,url"`
	TimingPointEndpoint string `json:"timingPointEndpoint" yaml:"timingPointEndpoint" validate:"required"`
	StopAreaEndpoint    string `json:"stopAreaEndpoint" yaml:"stopAreaEndpoint" validate:"required"`

	TimingPointCode string `json:"timingPointCode" yaml:"timingPointCode"`
	StopAreaCode    string `json:"stopAreaCode" yaml:"stopAreaCode"`

	// Unset flags inherit from the defaults, an explicit false does not
	ShowOnlyDepartures   *bool  `json:"showOnlyDepartures,omitempty" yaml:"showOnlyDepartures"`
	DeparturesOnlySuffix string `json:"departuresOnlySuffix" yaml:"departuresOnlySuffix"`

	// Destinations is inherited only when absent, an empty list means no destination filter
	Destinations []string `json:"destinations" yaml:"destinations"`
	ShowTownName *bool    `json:"showTownName,omitempty" yaml:"showTownName"`
	Debug        *bool    `json:"debug,omitempty" yaml:"debug"`

	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}

func Defaults() Config {
	return Config{
		APIBase:              DefaultAPIBase,
		TimingPointEndpoint:  DefaultTimingPointEndpoint,
		StopAreaEndpoint:     DefaultStopAreaEndpoint,
		DeparturesOnlySuffix: DefaultDeparturesOnlySuffix,
	}
}

// ApplyDefaults fills every unset field of c from defaults
func (c Config) ApplyDefaults(defaults Config) Config {
	c.APIBase = util.FirstNonEmpty(c.APIBase, defaults.APIBase)
	c.TimingPointEndpoint = util.FirstNonEmpty(c.TimingPointEndpoint, defaults.TimingPointEndpoint)
	c.StopAreaEndpoint = util.FirstNonEmpty(c.StopAreaEndpoint, defaults.StopAreaEndpoint)
	c.TimingPointCode = util.FirstNonEmpty(c.TimingPointCode, defaults.TimingPointCode)
	c.StopAreaCode = util.FirstNonEmpty(c.StopAreaCode, defaults.StopAreaCode)
	c.DeparturesOnlySuffix = util.FirstNonEmpty(c.DeparturesOnlySuffix, defaults.DeparturesOnlySuffix)
	c.Filter = util.FirstNonEmpty(c.Filter, defaults.Filter)

	if c.ShowOnlyDepartures == nil {
		c.ShowOnlyDepartures = defaults.ShowOnlyDepartures
	}
	if c.ShowTownName == nil {
		c.ShowTownName = defaults.ShowTownName
	}
	if c.Debug == nil {
		c.Debug = defaults.Debug
	}

	if c.Destinations == nil {
		c.Destinations = defaults.Destinations
	}
	if c.Destinations != nil {
		c.Destinations = append([]string{}, util.RemoveDuplicateStrings(c.Destinations, nil)...)
	}

	return c
}

var ErrMissingDeparturesOnlySuffix = errors.New("departuresOnlySuffix is required when showOnlyDepartures is set")

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if Enabled(c.ShowOnlyDepartures) && c.DeparturesOnlySuffix == "" {
		return ErrMissingDeparturesOnlySuffix
	}

	return nil
}

// Enabled reports whether an optional flag is set and true
func Enabled(flag *bool) bool {
	return flag != nil && *flag
}

func Bool(value bool) *bool {
	return &value
}

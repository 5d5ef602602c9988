package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	c := Config{
		TimingPointCode: "30005010",
		Destinations:    []string{"UITH", "UITH", ""},
	}.ApplyDefaults(Defaults())

	assert.Equal(t, DefaultAPIBase, c.APIBase)
	assert.Equal(t, DefaultTimingPointEndpoint, c.TimingPointEndpoint)
	assert.Equal(t, DefaultStopAreaEndpoint, c.StopAreaEndpoint)
	assert.Equal(t, DefaultDeparturesOnlySuffix, c.DeparturesOnlySuffix)
	assert.Equal(t, "30005010", c.TimingPointCode)
	assert.Equal(t, []string{"UITH"}, c.Destinations)
	assert.NoError(t, c.Validate())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	defaults := Defaults()
	defaults.ShowTownName = Bool(true)
	defaults.Destinations = []string{"CS"}

	c := Config{APIBase: "https://example.org/ovapi", Destinations: []string{"UITH"}}.ApplyDefaults(defaults)

	assert.Equal(t, "https://example.org/ovapi", c.APIBase)
	assert.Equal(t, []string{"UITH"}, c.Destinations)
	assert.True(t, Enabled(c.ShowTownName))
}

func TestApplyDefaultsExplicitEmptyValuesWin(t *testing.T) {
	defaults := Defaults()
	defaults.ShowTownName = Bool(true)
	defaults.ShowOnlyDepartures = Bool(true)
	defaults.Destinations = []string{"CS"}

	c := Config{
		Destinations:       []string{},
		ShowTownName:       Bool(false),
		ShowOnlyDepartures: Bool(false),
	}.ApplyDefaults(defaults).ApplyDefaults(Defaults())

	assert.NotNil(t, c.Destinations)
	assert.Empty(t, c.Destinations)
	assert.False(t, Enabled(c.ShowTownName))
	assert.False(t, Enabled(c.ShowOnlyDepartures))

	inherited := Config{}.ApplyDefaults(defaults)
	assert.Equal(t, []string{"CS"}, inherited.Destinations)
	assert.True(t, Enabled(inherited.ShowTownName))
	assert.True(t, Enabled(inherited.ShowOnlyDepartures))
}

func TestApplyDefaultsEmptyDestinationsFromJSON(t *testing.T) {
	var c Config
	require.NoError(t, json.Unmarshal([]byte(`{"destinations": [], "showTownName": false}`), &c))

	c = c.ApplyDefaults(Config{Destinations: []string{"CS"}, ShowTownName: Bool(true)})

	assert.Empty(t, c.Destinations)
	assert.NotNil(t, c.Destinations)
	assert.False(t, Enabled(c.ShowTownName))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{}.Validate())

	c := Defaults()
	c.APIBase = "not a url"
	assert.Error(t, c.Validate())

	c = Defaults()
	c.ShowOnlyDepartures = Bool(true)
	c.DeparturesOnlySuffix = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingDeparturesOnlySuffix)

	assert.NoError(t, Defaults().Validate())
}

func TestParseFile(t *testing.T) {
	file, err := ParseFile([]byte(`
updateInterval: PT30S
defaults:
  showTownName: true
  destinations: [UITH]
boards:
  - identifier: utrecht-cs
    config:
      stopAreaCode: utrcs
  - identifier: uithof
    config:
      timingPointCode: "50000240"
      destinations: [CS]
      filter: 'TransportType == "TRAM"'
  - identifier: everything
    config:
      timingPointCode: "50000241"
      showTownName: false
      destinations: []
`))
	require.NoError(t, err)

	interval, err := file.Interval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, interval)

	require.Len(t, file.Boards, 3)

	utrecht := file.Boards[0]
	assert.Equal(t, "utrecht-cs", utrecht.Identifier)
	assert.Equal(t, DefaultAPIBase, utrecht.Config.APIBase)
	assert.Equal(t, "utrcs", utrecht.Config.StopAreaCode)
	assert.True(t, Enabled(utrecht.Config.ShowTownName))
	assert.Equal(t, []string{"UITH"}, utrecht.Config.Destinations)

	uithof := file.Boards[1]
	assert.Equal(t, "50000240", uithof.Config.TimingPointCode)
	assert.Equal(t, []string{"CS"}, uithof.Config.Destinations)
	assert.Equal(t, `TransportType == "TRAM"`, uithof.Config.Filter)

	everything := file.Boards[2]
	assert.False(t, Enabled(everything.Config.ShowTownName))
	assert.NotNil(t, everything.Config.Destinations)
	assert.Empty(t, everything.Config.Destinations)
}

func TestParseFileDefaultInterval(t *testing.T) {
	file, err := ParseFile([]byte(`boards: []`))
	require.NoError(t, err)

	interval, err := file.Interval()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, interval)
}

func TestParseFileErrors(t *testing.T) {
	_, err := ParseFile([]byte(`updateInterval: soon`))
	assert.Error(t, err)

	_, err = ParseFile([]byte(`updateInterval: PT0S`))
	assert.Error(t, err)

	_, err = ParseFile([]byte("boards:\n  - config:\n      timingPointCode: \"1\"\n"))
	assert.Error(t, err)

	_, err = ParseFile([]byte("boards:\n  - identifier: a\n  - identifier: a\n"))
	assert.Error(t, err)

	_, err = ParseFile([]byte("boards: [\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("boards:\n  - identifier: a\n    config:\n      timingPointCode: \"1\"\n"), 0o600))

	file, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, file.Boards, 1)
	assert.Equal(t, "1", file.Boards[0].Config.TimingPointCode)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestFromEnvironment(t *testing.T) {
	c := FromEnvironment(map[string]string{
		"OVDEPARTURES_API_BASE":     "http://localhost:9000",
		"OVDEPARTURES_DESTINATIONS": "UITH,CS,UITH",
	})

	assert.Equal(t, "http://localhost:9000", c.APIBase)
	assert.Equal(t, DefaultTimingPointEndpoint, c.TimingPointEndpoint)
	assert.Equal(t, []string{"UITH", "CS"}, c.Destinations)
}

package ovapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timingPointBody = `{
	"30005010": {
		"Stop": {"TimingPointCode": "30005010", "TimingPointName": "Centraal Station", "TimingPointTown": "Utrecht", "TimingPointWheelChairAccessible": "ACCESSIBLE", "TimingPointVisualAccessible": "UNKNOWN", "Latitude": 52.089, "Longitude": 5.110},
		"Passes": {
			"QBUZZ_u012_1": {"DataOwnerCode": "QBUZZ", "OperatorCode": "QBUZZ", "LinePublicNumber": "12", "DestinationName50": "Uithof", "DestinationCode": "UITH", "ExpectedDepartureTime": "2024-01-01T10:00:00", "TargetDepartureTime": "2024-01-01T09:58:00"}
		}
	}
}`

const stopAreaBody = `{
	"utrcs": {
		"30005011": {
			"Stop": {"TimingPointCode": "30005011", "TimingPointName": "Centraal Station", "TimingPointTown": "Utrecht"},
			"Passes": {}
		}
	}
}`

func newTestClient(serverURL string) *Client {
	return &Client{
		APIBase:              serverURL,
		TimingPointEndpoint:  "tpc",
		StopAreaEndpoint:     "stopareacode",
		DeparturesOnlySuffix: "departures",
		UserAgent:            "ovdepartures-test",
	}
}

func TestFetchEmptyCodeMakesNoRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	timingPoints, err := client.FetchTimingPoints(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, timingPoints)
	assert.NotNil(t, timingPoints)

	stopAreas, err := client.FetchStopAreas(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, stopAreas)

	assert.Equal(t, int32(0), requests.Load())
}

func TestFetchTimingPoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tpc/30005010", r.URL.Path)
		assert.Equal(t, "ovdepartures-test", r.Header.Get("User-Agent"))
		w.Write([]byte(timingPointBody))
	}))
	defer server.Close()

	timingPoints, err := newTestClient(server.URL).FetchTimingPoints(context.Background(), "30005010")
	require.NoError(t, err)
	require.Contains(t, timingPoints, "30005010")

	stopRecord := timingPoints["30005010"]
	require.NotNil(t, stopRecord.Stop)
	assert.Equal(t, "Centraal Station", stopRecord.Stop.TimingPointName)
	assert.Equal(t, "ACCESSIBLE", stopRecord.Stop.TimingPointWheelChairAccessible)
	require.Contains(t, stopRecord.Passes, "QBUZZ_u012_1")
	assert.Equal(t, "UITH", stopRecord.Passes["QBUZZ_u012_1"].DestinationCode)
}

func TestFetchStopAreasDeparturesOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stopareacode/utrcs/departures", r.URL.Path)
		w.Write([]byte(stopAreaBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.ShowOnlyDepartures = true

	stopAreas, err := client.FetchStopAreas(context.Background(), "utrcs")
	require.NoError(t, err)
	require.Contains(t, stopAreas, "utrcs")
	assert.Contains(t, stopAreas["utrcs"], "30005011")
}

func TestFetchNon200IsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(timingPointBody))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchTimingPoints(context.Background(), "30005010")
	require.Error(t, err)

	var fetchError *FetchError
	require.True(t, errors.As(err, &fetchError))
	assert.Equal(t, server.URL+"/tpc/30005010", fetchError.URL)
	assert.Equal(t, http.StatusServiceUnavailable, fetchError.StatusCode)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetchInvalidJSONIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	timingPoints, err := newTestClient(server.URL).FetchTimingPoints(context.Background(), "30005010")
	assert.Nil(t, timingPoints)

	var fetchError *FetchError
	require.ErrorAs(t, err, &fetchError)
	assert.Equal(t, http.StatusOK, fetchError.StatusCode)
}

func TestFetchTransportFailureIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	_, err := newTestClient(serverURL).FetchStopAreas(context.Background(), "utrcs")

	var fetchError *FetchError
	require.ErrorAs(t, err, &fetchError)
	assert.Equal(t, 0, fetchError.StatusCode)
	assert.Equal(t, serverURL+"/stopareacode/utrcs", fetchError.URL)
}

func TestCategoryURL(t *testing.T) {
	client := newTestClient("http://v0.ovapi.nl/")
	assert.Equal(t, "http://v0.ovapi.nl/tpc/1234,5678", client.CategoryURL("tpc", "1234,5678"))

	client.ShowOnlyDepartures = true
	assert.Equal(t, "http://v0.ovapi.nl/tpc/1234/departures", client.CategoryURL("tpc", "1234"))

	client.DeparturesOnlySuffix = ""
	assert.Equal(t, "http://v0.ovapi.nl/tpc/1234", client.CategoryURL("tpc", "1234"))
}

package ovapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

var ErrUnexpectedStatus = errors.New("unexpected status")

type Client struct {
	APIBase string

	TimingPointEndpoint string
	StopAreaEndpoint    string

	ShowOnlyDepartures   bool
	DeparturesOnlySuffix string

	UserAgent  string
	HTTPClient *http.Client
}

func (c *Client) FetchTimingPoints(ctx context.Context, timingPointCode string) (TimingPointData, error) {
	timingPoints := TimingPointData{}

	if err := c.fetchCategory(ctx, c.TimingPointEndpoint, timingPointCode, &timingPoints); err != nil {
		return nil, err
	}

	return timingPoints, nil
}

func (c *Client) FetchStopAreas(ctx context.Context, stopAreaCode string) (StopAreaData, error) {
	stopAreas := StopAreaData{}

	if err := c.fetchCategory(ctx, c.StopAreaEndpoint, stopAreaCode, &stopAreas); err != nil {
		return nil, err
	}

	return stopAreas, nil
}

// CategoryURL builds {APIBase}/{endpoint}/{code}[/{suffix}]
func (c *Client) CategoryURL(endpoint string, code string) string {
	requestURL := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.APIBase, "/"), endpoint, code)

	if c.ShowOnlyDepartures && c.DeparturesOnlySuffix != "" {
		requestURL = fmt.Sprintf("%s/%s", requestURL, c.DeparturesOnlySuffix)
	}

	return requestURL
}

// fetchCategory leaves out untouched when code is empty so either category can be left unset
func (c *Client) fetchCategory(ctx context.Context, endpoint string, code string, out any) error {
	if code == "" {
		return nil
	}

	requestURL := c.CategoryURL(endpoint, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &FetchError{URL: requestURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &FetchError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: requestURL, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{URL: requestURL, StatusCode: resp.StatusCode, Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{URL: requestURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}

	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return &http.Client{Timeout: DefaultTimeout}
}

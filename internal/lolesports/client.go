// Package lolesports is a thin client for the public lolesports.com
// esports API. It covers exactly the two endpoints the dashboard needs
// and decodes into wire types; mapping to the domain model happens in
// the resources package.
package lolesports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://esports-api.lolesports.com/persisted/gw"

// The public API key the lolesports site itself ships to browsers.
const (
	apiKeyHeader = "x-api-key"
	apiKeyValue  = "0TvQnueqKa5mxJntVWt0w4LpLfEkrV1Ta8rQBb9Z"
)

// Client calls the lolesports API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the production API.
func NewClient() *Client {
	return NewClientWithURL(defaultBaseURL)
}

// NewClientWithURL creates a client with a custom base URL, used by
// tests to point at an httptest server.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lolesports: unexpected status %d", e.Code)
}

// League is a league record as returned by getLeagues.
type League struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Image    string `json:"image"`
	Priority int64  `json:"priority"`
}

// Schedule is the first page of a league's schedule.
type Schedule struct {
	Pages  Pages   `json:"pages"`
	Events []Event `json:"events"`
}

// Pages carries the pagination tokens of a schedule response. The
// dashboard reads only the first page; the tokens are surfaced for
// logging.
type Pages struct {
	Older *string `json:"older"`
	Newer *string `json:"newer"`
}

// Event is a schedule entry of type "match". Other entry types (shows,
// recaps) are dropped during decoding.
type Event struct {
	StartTime string      `json:"startTime"`
	BlockName string      `json:"blockName"`
	State     string      `json:"state"`
	Type      string      `json:"type"`
	League    EventLeague `json:"league"`
	Match     Match       `json:"match"`
}

// EventLeague is the league stub embedded in a schedule event.
type EventLeague struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Match holds the teams and format of a scheduled match.
type Match struct {
	ID       string   `json:"id"`
	Teams    []Team   `json:"teams"`
	Strategy Strategy `json:"strategy"`
}

// Team is one participant of a match.
type Team struct {
	Name   string  `json:"name"`
	Code   string  `json:"code"`
	Image  string  `json:"image"`
	Result *Result `json:"result"`
	Record *Record `json:"record"`
}

// Result is a team's per-match outcome, absent until reported.
type Result struct {
	GameWins int64   `json:"gameWins"`
	Outcome  *string `json:"outcome"`
}

// Record is a team's season win/loss record.
type Record struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
}

// Strategy is the match format, e.g. {type: "bestOf", count: 5}.
type Strategy struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type leaguesResponse struct {
	Data struct {
		Leagues []League `json:"leagues"`
	} `json:"data"`
}

type scheduleResponse struct {
	Data struct {
		Schedule struct {
			Pages  Pages             `json:"pages"`
			Events []json.RawMessage `json:"events"`
		} `json:"schedule"`
	} `json:"data"`
}

// FetchLeagues returns the full league list.
func (c *Client) FetchLeagues(ctx context.Context) ([]League, error) {
	var parsed leaguesResponse
	if err := c.get(ctx, "/getLeagues?hl=en-US", &parsed); err != nil {
		return nil, err
	}
	return parsed.Data.Leagues, nil
}

// FetchSchedule returns one page of a league's schedule. An empty
// pageToken requests the current page. Entries whose type is not
// "match" are filtered out.
func (c *Client) FetchSchedule(ctx context.Context, leagueID, pageToken string) (*Schedule, error) {
	path := "/getSchedule?hl=en-US&leagueId=" + url.QueryEscape(leagueID)
	if pageToken != "" {
		path += "&pageToken=" + url.QueryEscape(pageToken)
	}

	var parsed scheduleResponse
	if err := c.get(ctx, path, &parsed); err != nil {
		return nil, err
	}

	sched := &Schedule{Pages: parsed.Data.Schedule.Pages}
	for _, raw := range parsed.Data.Schedule.Events {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("lolesports: decoding schedule event: %w", err)
		}
		if probe.Type != "match" {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("lolesports: decoding schedule event: %w", err)
		}
		sched.Events = append(sched.Events, ev)
	}
	return sched, nil
}

// get performs an authenticated GET and decodes the JSON body into dest.
func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("lolesports: building request: %w", err)
	}
	req.Header.Set(apiKeyHeader, apiKeyValue)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lolesports: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("lolesports: decoding response: %w", err)
	}
	return nil
}

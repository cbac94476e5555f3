// Package station fetches raw tide predictions for a single NOAA station.
//
// One call makes exactly one HTTP GET to the CO-OPS datagetter endpoint.
// There is no retry here: the external timer that schedules invocations is
// the retry policy.
package station

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lcary/tide-tracker/internal/models"
	"github.com/lcary/tide-tracker/pkg/http/client"
)

// minRawSamples is the fewest (timestamp, height) pairs a usable response
// can carry. Two days of 6-minute predictions yield hundreds; anything
// under this means the station returned a truncated or empty window.
const minRawSamples = 25

// RawSample is one (timestamp, height) pair as reported by NOAA, before
// resampling onto the canonical 10-minute grid.
type RawSample struct {
	Time     time.Time
	HeightFt float64
}

type Client struct {
	httpClient client.Interface
	stationID  string
}

func NewClient(httpClient client.Interface, stationID string) *Client {
	return &Client{
		httpClient: httpClient,
		stationID:  stationID,
	}
}

// Fetch retrieves raw predictions bracketing [now-12h, now+12h]. The query
// spans yesterday through tomorrow so the window is covered with margin.
func (c *Client) Fetch(ctx context.Context, now time.Time) ([]RawSample, error) {
	beginDate := now.AddDate(0, 0, -1).Format("20060102")
	endDate := now.AddDate(0, 0, 1).Format("20060102")

	path := fmt.Sprintf("/api/prod/datagetter"+
		"?station=%s&begin_date=%s&end_date=%s&product=predictions&datum=MLLW"+
		"&units=english&time_zone=lst_ldt&format=json&interval=6",
		c.stationID, beginDate, endDate)

	resp, err := c.httpClient.Get(ctx, path)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	log.Debug().
		Str("station_id", c.stationID).
		Str("begin_date", beginDate).
		Str("end_date", endDate).
		Msg("Fetched predictions from NOAA")

	var noaaResp models.NoaaResponse
	if err := json.Unmarshal(resp.Body, &noaaResp); err != nil {
		return nil, &ParseError{Message: "decoding response", Err: err}
	}
	if len(noaaResp.Predictions) == 0 {
		return nil, &ParseError{Message: "response contains no predictions"}
	}

	raw := make([]RawSample, len(noaaResp.Predictions))
	for i, p := range noaaResp.Predictions {
		// NOAA reports station-local time as "2006-01-02 15:04".
		t, err := time.ParseInLocation("2006-01-02 15:04", p.Time, now.Location())
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("parsing time %q", p.Time), Err: err}
		}

		height, err := strconv.ParseFloat(p.Height, 64)
		if err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("parsing height %q", p.Height), Err: err}
		}

		raw[i] = RawSample{Time: t, HeightFt: height}
	}

	sort.Slice(raw, func(i, j int) bool {
		return raw[i].Time.Before(raw[j].Time)
	})

	if err := checkCoverage(raw, now); err != nil {
		return nil, err
	}

	return raw, nil
}

// checkCoverage verifies the sorted raw samples bracket the display window.
func checkCoverage(raw []RawSample, now time.Time) error {
	if len(raw) < minRawSamples {
		return &InsufficientDataError{
			Message: fmt.Sprintf("got %d samples, need at least %d", len(raw), minRawSamples),
		}
	}

	windowStart := now.Add(-models.WindowMinutes * time.Minute)
	windowEnd := now.Add(models.WindowMinutes * time.Minute)

	if raw[0].Time.After(windowStart) {
		return &InsufficientDataError{
			Message: fmt.Sprintf("earliest sample %s is after window start %s",
				raw[0].Time.Format(time.RFC3339), windowStart.Format(time.RFC3339)),
		}
	}
	if raw[len(raw)-1].Time.Before(windowEnd) {
		return &InsufficientDataError{
			Message: fmt.Sprintf("latest sample %s is before window end %s",
				raw[len(raw)-1].Time.Format(time.RFC3339), windowEnd.Format(time.RFC3339)),
		}
	}
	return nil
}

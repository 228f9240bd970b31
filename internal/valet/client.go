package valet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

const dayFormat = "2006-01-02"

var fetchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "boc_valet_fetch_duration_seconds",
		Help:    "Valet observation fetch duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"series"},
)

// Client implements Fetcher against the Bank of Canada Valet REST API.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient creates a Valet client with optional proxy support.
func NewClient(baseURL, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Name() string { return "valet" }

// valetResponse is the JSON shape of /valet/observations. Each observation
// carries the date under "d" and the value under the series code, e.g.
// {"d": "2020-01-01", "V39079": {"v": "0.25"}}.
type valetResponse struct {
	Observations []map[string]json.RawMessage `json:"observations"`
}

type valetValue struct {
	V string `json:"v"`
}

type valetError struct {
	Message string `json:"message"`
}

// FetchObservations retrieves one series over [start, end]. Dates the
// provider reports without a value (or with an empty value) come back as
// absent observations, not errors.
func (c *Client) FetchObservations(ctx context.Context, seriesCode string, start, end time.Time) ([]model.Observation, error) {
	defer func(begin time.Time) {
		fetchDuration.WithLabelValues(seriesCode).Observe(time.Since(begin).Seconds())
	}(time.Now())

	endpoint := fmt.Sprintf("%s/observations/%s?start_date=%s&end_date=%s",
		c.BaseURL, url.PathEscape(seriesCode), start.Format(dayFormat), end.Format(dayFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", seriesCode, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", seriesCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		// Valet error payloads carry a human-readable message.
		var ve valetError
		if json.Unmarshal(body, &ve) == nil && ve.Message != "" {
			return nil, fmt.Errorf("fetch %s: status %d: %s", seriesCode, resp.StatusCode, ve.Message)
		}
		return nil, fmt.Errorf("fetch %s: status %d, body: %s", seriesCode, resp.StatusCode, truncate(body, 200))
	}

	var vr valetResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("fetch %s: decode: %w", seriesCode, err)
	}

	obs := make([]model.Observation, 0, len(vr.Observations))
	for _, raw := range vr.Observations {
		o, err := parseObservation(raw, seriesCode)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", seriesCode, err)
		}
		obs = append(obs, o)
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs, nil
}

func parseObservation(raw map[string]json.RawMessage, seriesCode string) (model.Observation, error) {
	var dateStr string
	if d, ok := raw["d"]; ok {
		if err := json.Unmarshal(d, &dateStr); err != nil {
			return model.Observation{}, fmt.Errorf("decode observation date: %w", err)
		}
	}
	date, err := time.Parse(dayFormat, dateStr)
	if err != nil {
		return model.Observation{}, fmt.Errorf("parse observation date %q: %w", dateStr, err)
	}

	obs := model.Observation{Date: date}
	v, ok := raw[seriesCode]
	if !ok {
		return obs, nil
	}
	var vv valetValue
	if err := json.Unmarshal(v, &vv); err != nil {
		return model.Observation{}, fmt.Errorf("decode value for %s: %w", dateStr, err)
	}
	if vv.V == "" {
		return obs, nil
	}
	f, err := strconv.ParseFloat(vv.V, 64)
	if err != nil {
		return model.Observation{}, fmt.Errorf("parse value %q for %s: %w", vv.V, dateStr, err)
	}
	obs.Value = f
	obs.Valid = true
	return obs, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

package valet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestFetchObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/observations/V39079") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("start_date"); got != "2020-01-01" {
			t.Errorf("start_date = %q, want 2020-01-01", got)
		}
		w.Header().Set("Content-Type", "application/json")
		// Middle date carries no value: absent, not zero.
		w.Write([]byte(`{
			"observations": [
				{"d": "2020-01-03", "V39079": {"v": "0.75"}},
				{"d": "2020-01-01", "V39079": {"v": "0.25"}},
				{"d": "2020-01-02", "V39079": {"v": ""}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	obs, err := c.FetchObservations(context.Background(), "V39079",
		testDay(t, "2020-01-01"), testDay(t, "2020-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 3 {
		t.Fatalf("got %d observations, want 3", len(obs))
	}
	// Sorted ascending regardless of provider order.
	if !obs[0].Date.Equal(testDay(t, "2020-01-01")) || !obs[2].Date.Equal(testDay(t, "2020-01-03")) {
		t.Errorf("observations not sorted: %v .. %v", obs[0].Date, obs[2].Date)
	}
	if !obs[0].Valid || obs[0].Value != 0.25 {
		t.Errorf("obs[0] = %+v, want value 0.25", obs[0])
	}
	if obs[1].Valid {
		t.Errorf("obs[1] = %+v, want absent", obs[1])
	}
	if !obs[2].Valid || obs[2].Value != 0.75 {
		t.Errorf("obs[2] = %+v, want value 0.75", obs[2])
	}
}

func TestFetchObservations_MissingSeriesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"observations": [{"d": "2020-01-01"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	obs, err := c.FetchObservations(context.Background(), "FXUSDCAD",
		testDay(t, "2020-01-01"), testDay(t, "2020-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 1 || obs[0].Valid {
		t.Errorf("obs = %+v, want one absent observation", obs)
	}
}

func TestFetchObservations_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Series BOGUS not found."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	_, err := c.FetchObservations(context.Background(), "BOGUS",
		testDay(t, "2020-01-01"), testDay(t, "2020-01-03"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Series BOGUS not found") {
		t.Errorf("error %q should surface the provider message", err)
	}
}

func TestFetchObservations_BadValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"observations": [{"d": "2020-01-01", "V39079": {"v": "not-a-number"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.FetchObservations(context.Background(), "V39079",
		testDay(t, "2020-01-01"), testDay(t, "2020-01-01")); err == nil {
		t.Fatal("expected error for unparseable value")
	}
}

package analyzer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func present(t *testing.T, date string, v float64) model.Observation {
	return model.Observation{Date: day(t, date), Value: v, Valid: true}
}

func absent(t *testing.T, date string) model.Observation {
	return model.Observation{Date: day(t, date)}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_SparseSeries(t *testing.T) {
	s := model.Series{
		Code: "V39079",
		Observations: []model.Observation{
			present(t, "2020-01-01", 0.25),
			absent(t, "2020-01-02"),
			present(t, "2020-01-03", 0.75),
		},
	}
	sum, err := Summarize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(sum.Min, 0.25) || !approx(sum.Max, 0.75) {
		t.Errorf("min/max = %v/%v, want 0.25/0.75", sum.Min, sum.Max)
	}
	if !approx(sum.Mean, 0.5) {
		t.Errorf("mean = %v, want 0.5", sum.Mean)
	}
	if !sum.FirstDate.Equal(day(t, "2020-01-01")) || !sum.LastDate.Equal(day(t, "2020-01-03")) {
		t.Errorf("dates = %v..%v, want 2020-01-01..2020-01-03", sum.FirstDate, sum.LastDate)
	}
	if sum.Count != 2 {
		t.Errorf("count = %d, want 2", sum.Count)
	}
}

func TestSummarize_NoData(t *testing.T) {
	cases := []model.Series{
		{Code: "empty"},
		{Code: "all-absent", Observations: []model.Observation{
			absent(t, "2020-01-01"),
			absent(t, "2020-01-02"),
		}},
	}
	for _, s := range cases {
		if _, err := Summarize(s); !errors.Is(err, ErrNoData) {
			t.Errorf("series %s: err = %v, want ErrNoData", s.Code, err)
		}
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	ordered := model.Series{Observations: []model.Observation{
		present(t, "2020-01-01", 1.30),
		present(t, "2020-01-02", 1.28),
		present(t, "2020-01-03", 1.35),
	}}
	shuffled := model.Series{Observations: []model.Observation{
		present(t, "2020-01-03", 1.35),
		present(t, "2020-01-01", 1.30),
		present(t, "2020-01-02", 1.28),
	}}

	a, err := Summarize(ordered)
	if err != nil {
		t.Fatalf("ordered: %v", err)
	}
	b, err := Summarize(shuffled)
	if err != nil {
		t.Fatalf("shuffled: %v", err)
	}
	if *a != *b {
		t.Errorf("summaries differ: %+v vs %+v", a, b)
	}
}

func TestSummarize_BoundaryDatesAreNotExtremaDates(t *testing.T) {
	// The minimum sits in the middle of the range; FirstDate/LastDate must
	// still report the first and last present observations overall.
	s := model.Series{Observations: []model.Observation{
		present(t, "2020-01-01", 0.50),
		present(t, "2020-01-02", 0.10),
		present(t, "2020-01-03", 0.90),
		present(t, "2020-01-04", 0.50),
	}}
	sum, err := Summarize(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.FirstDate.Equal(day(t, "2020-01-01")) {
		t.Errorf("FirstDate = %v, want 2020-01-01", sum.FirstDate)
	}
	if !sum.LastDate.Equal(day(t, "2020-01-04")) {
		t.Errorf("LastDate = %v, want 2020-01-04", sum.LastDate)
	}
	if !approx(sum.Min, 0.10) || !approx(sum.Max, 0.90) {
		t.Errorf("min/max = %v/%v, want 0.10/0.90", sum.Min, sum.Max)
	}
}

func TestSummarize_MeanWithinBounds(t *testing.T) {
	series := []model.Series{
		{Observations: []model.Observation{
			present(t, "2020-01-01", 0.25),
			present(t, "2020-01-02", 0.50),
			present(t, "2020-01-03", 1.75),
		}},
		{Observations: []model.Observation{
			present(t, "2020-02-01", -3.2),
			present(t, "2020-02-02", 4.1),
			absent(t, "2020-02-03"),
			present(t, "2020-02-04", 0.0),
		}},
		{Observations: []model.Observation{
			present(t, "2020-03-01", 42.0),
		}},
	}
	for i, s := range series {
		sum, err := Summarize(s)
		if err != nil {
			t.Fatalf("series %d: %v", i, err)
		}
		if sum.Mean < sum.Min || sum.Mean > sum.Max {
			t.Errorf("series %d: mean %v outside [%v, %v]", i, sum.Mean, sum.Min, sum.Max)
		}
	}
}

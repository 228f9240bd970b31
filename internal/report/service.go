package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MickeyTee/BankOfCanada/internal/analyzer"
	"github.com/MickeyTee/BankOfCanada/internal/model"
	"github.com/MickeyTee/BankOfCanada/internal/valet"
)

// ErrInvalidRange indicates an inverted date range. It is checked before any
// fetch is attempted.
var ErrInvalidRange = errors.New("start date must not be after end date")

// SeriesSpec names one configured Valet series.
type SeriesSpec struct {
	Code  string
	Label string
}

// Service runs the full comparison pipeline: fetch both series, summarize
// each, correlate the overlap, assemble the result. It holds no per-request
// state; every Compare call allocates fresh.
type Service struct {
	fetcher valet.Fetcher
	a, b    SeriesSpec
}

// NewService creates a comparison service over the two configured series.
func NewService(fetcher valet.Fetcher, a, b SeriesSpec) *Service {
	return &Service{fetcher: fetcher, a: a, b: b}
}

// SeriesA returns the first configured series.
func (s *Service) SeriesA() SeriesSpec { return s.a }

// SeriesB returns the second configured series.
func (s *Service) SeriesB() SeriesSpec { return s.b }

type fetchResult struct {
	spec SeriesSpec
	obs  []model.Observation
	err  error
}

// Compare validates the range, fetches both series concurrently, and
// assembles the comparison. A failed or empty series degrades to a note in
// the result rather than failing the request; only an invalid range returns
// an error.
func (s *Service) Compare(ctx context.Context, start, end time.Time) (*model.Comparison, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	// The two fetches are independent; run them concurrently and fan in.
	ch := make(chan fetchResult, 2)
	for _, spec := range []SeriesSpec{s.a, s.b} {
		go func(spec SeriesSpec) {
			obs, err := s.fetcher.FetchObservations(ctx, spec.Code, start, end)
			ch <- fetchResult{spec: spec, obs: obs, err: err}
		}(spec)
	}
	byCode := make(map[string]fetchResult, 2)
	for i := 0; i < 2; i++ {
		r := <-ch
		byCode[r.spec.Code] = r
	}

	resA := s.buildSeriesResult(byCode[s.a.Code])
	resB := s.buildSeriesResult(byCode[s.b.Code])

	var corr model.CorrelationResult
	if !resA.FetchFailed && !resB.FetchFailed {
		corr = analyzer.Correlate(resA.Series, resB.Series)
	}

	cmp := &model.Comparison{
		StartDate:   start,
		EndDate:     end,
		A:           resA,
		B:           resB,
		Correlation: corr,
		Message:     buildMessage(resA, resB, corr),
		ComputedAt:  time.Now(),
	}
	return cmp, nil
}

func (s *Service) buildSeriesResult(r fetchResult) model.SeriesResult {
	res := model.SeriesResult{
		Series: model.Series{Code: r.spec.Code, Label: r.spec.Label, Observations: r.obs},
	}
	if r.err != nil {
		log.Printf("[WARN] fetch %s failed: %v", r.spec.Code, r.err)
		res.FetchFailed = true
		res.Note = fmt.Sprintf("%s (%s): fetch failed: %v", r.spec.Label, r.spec.Code, r.err)
		return res
	}

	sum, err := analyzer.Summarize(res.Series)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoData) {
			res.Note = fmt.Sprintf("%s (%s): no data in the requested range", r.spec.Label, r.spec.Code)
			return res
		}
		// Summarize only ever returns ErrNoData today; degrade all the same.
		log.Printf("[WARN] summarize %s: %v", r.spec.Code, err)
		res.Note = fmt.Sprintf("%s (%s): %v", r.spec.Label, r.spec.Code, err)
		return res
	}
	res.Summary = sum
	return res
}

func buildMessage(a, b model.SeriesResult, corr model.CorrelationResult) string {
	var notes []string
	if a.Note != "" {
		notes = append(notes, a.Note)
	}
	if b.Note != "" {
		notes = append(notes, b.Note)
	}
	if !corr.Defined {
		switch {
		case a.FetchFailed || b.FetchFailed:
			notes = append(notes, "correlation unavailable: series fetch failed")
		case corr.SampleSize < 2:
			notes = append(notes, "correlation undefined: fewer than two dates with values in both series")
		default:
			notes = append(notes, "correlation undefined: constant values over the overlapping dates")
		}
	}
	if len(notes) == 0 {
		return fmt.Sprintf("compared %d overlapping observations", corr.SampleSize)
	}
	return strings.Join(notes, "; ")
}

package recorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

// ComparisonRecord is one computed comparison flattened for persistence.
// Nil pointer fields persist as NULL; a numeric sentinel never stands in for
// missing data.
type ComparisonRecord struct {
	ID          string
	RequestedAt time.Time
	StartDate   string
	EndDate     string
	SeriesA     string
	SeriesB     string

	ALow, AHigh, AMean    *float64
	AFirstDate, ALastDate *string

	BLow, BHigh, BMean    *float64
	BFirstDate, BLastDate *string

	Rho        *float64
	SampleSize int
	Message    string
}

// Recorder persists comparison results for later inspection. Raw fetched
// observations are never recorded.
type Recorder interface {
	Record(rec *ComparisonRecord) error
	Close() error
}

// FromComparison flattens a comparison into a record with a fresh id.
func FromComparison(cmp *model.Comparison) *ComparisonRecord {
	const day = "2006-01-02"
	rec := &ComparisonRecord{
		ID:          uuid.NewString(),
		RequestedAt: cmp.ComputedAt,
		StartDate:   cmp.StartDate.Format(day),
		EndDate:     cmp.EndDate.Format(day),
		SeriesA:     cmp.A.Series.Code,
		SeriesB:     cmp.B.Series.Code,
		SampleSize:  cmp.Correlation.SampleSize,
		Message:     cmp.Message,
	}
	rec.ALow, rec.AHigh, rec.AMean, rec.AFirstDate, rec.ALastDate = flatten(cmp.A.Summary)
	rec.BLow, rec.BHigh, rec.BMean, rec.BFirstDate, rec.BLastDate = flatten(cmp.B.Summary)
	if cmp.Correlation.Defined {
		rho := cmp.Correlation.Rho
		rec.Rho = &rho
	}
	return rec
}

func flatten(sum *model.SeriesSummary) (low, high, mean *float64, first, last *string) {
	if sum == nil {
		return nil, nil, nil, nil, nil
	}
	l, h, m := sum.Min, sum.Max, sum.Mean
	f := sum.FirstDate.Format("2006-01-02")
	t := sum.LastDate.Format("2006-01-02")
	return &l, &h, &m, &f, &t
}

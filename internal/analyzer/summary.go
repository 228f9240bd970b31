package analyzer

import (
	"errors"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

// ErrNoData indicates a series carried no present values in the requested
// range. It is a legitimate result state, not a failure.
var ErrNoData = errors.New("series has no observations with values")

// Summarize computes min, max and mean over the present values of a series,
// plus the dates of the first and last present observations. Input ordering
// does not matter; extrema and boundary dates are found by full scan rather
// than assumed from position.
func Summarize(series model.Series) (*model.SeriesSummary, error) {
	sum := &model.SeriesSummary{}
	values := make([]float64, 0, len(series.Observations))

	for _, obs := range series.Observations {
		if !obs.Valid {
			continue
		}
		if len(values) == 0 {
			sum.Min = obs.Value
			sum.Max = obs.Value
			sum.FirstDate = obs.Date
			sum.LastDate = obs.Date
		} else {
			if obs.Value < sum.Min {
				sum.Min = obs.Value
			}
			if obs.Value > sum.Max {
				sum.Max = obs.Value
			}
			if obs.Date.Before(sum.FirstDate) {
				sum.FirstDate = obs.Date
			}
			if obs.Date.After(sum.LastDate) {
				sum.LastDate = obs.Date
			}
		}
		values = append(values, obs.Value)
	}

	if len(values) == 0 {
		return nil, ErrNoData
	}
	sum.Count = len(values)
	sum.Mean = kahanSum(values) / float64(len(values))
	return sum, nil
}

// kahanSum adds values with compensated summation. Daily series over long
// ranges accumulate enough terms that naive summation drifts.
func kahanSum(values []float64) float64 {
	var total, comp float64
	for _, v := range values {
		y := v - comp
		t := total + y
		comp = (t - total) - y
		total = t
	}
	return total
}

package model

import "time"

// Observation is a single dated data point in a series. Valet reports some
// dates with no value (bank holidays, series gaps); Valid distinguishes an
// absent value from a real zero.
type Observation struct {
	Date  time.Time
	Value float64
	Valid bool
}

// Series holds the raw observations for one Valet series over the requested
// date range. Immutable once fetched; owned by a single request.
type Series struct {
	Code         string
	Label        string
	Observations []Observation
}

// SeriesSummary holds descriptive statistics over the present values of one
// series. FirstDate/LastDate are the dates of the first and last present
// observations, not the dates where the extrema occurred.
type SeriesSummary struct {
	Min       float64
	Max       float64
	Mean      float64
	FirstDate time.Time
	LastDate  time.Time
	Count     int
}

// CorrelationResult is the Pearson coefficient over the dates where both
// series have present values. Defined is false when fewer than two aligned
// points exist or either aligned subset is constant.
type CorrelationResult struct {
	Rho        float64
	SampleSize int
	Defined    bool
}

package model

import "time"

// SeriesResult pairs a fetched series with its summary. Summary is nil when
// the series had no present values in range or its fetch failed; Note says
// which.
type SeriesResult struct {
	Series      Series
	Summary     *SeriesSummary
	Note        string
	FetchFailed bool
}

// Comparison is the full result for one request: both series results plus
// their correlation and an overall human-readable message.
type Comparison struct {
	StartDate   time.Time
	EndDate     time.Time
	A           SeriesResult
	B           SeriesResult
	Correlation CorrelationResult
	Message     string
	ComputedAt  time.Time
}

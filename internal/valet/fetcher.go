package valet

import (
	"context"
	"time"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

// Fetcher defines the interface for retrieving series observations.
type Fetcher interface {
	// FetchObservations returns the observations for one series over
	// [start, end], ascending by date. Sparse results are expected; dates
	// without a value come back with Valid=false.
	FetchObservations(ctx context.Context, seriesCode string, start, end time.Time) ([]model.Observation, error)
	Name() string
}

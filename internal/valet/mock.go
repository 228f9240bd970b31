package valet

import (
	"context"
	"sync"
	"time"

	"github.com/MickeyTee/BankOfCanada/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data map[string][]model.Observation
	Errs map[string]error

	mu    sync.Mutex
	calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchObservations(_ context.Context, seriesCode string, _, _ time.Time) ([]model.Observation, error) {
	m.mu.Lock()
	m.calls = append(m.calls, seriesCode)
	m.mu.Unlock()

	if err, ok := m.Errs[seriesCode]; ok {
		return nil, err
	}
	return m.Data[seriesCode], nil
}

// Calls returns the series codes fetched so far, in call order.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

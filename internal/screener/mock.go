package screener

import (
	"context"

	"TrinityScanner/internal/model"
)

// MockFeed returns fixed screener output for development and testing.
type MockFeed struct {
	Quotes   []model.Quote
	Outcomes []RowOutcome
	Err      error
}

func (m *MockFeed) Name() string { return "mock" }

func (m *MockFeed) FetchNewHighs(context.Context) ([]model.Quote, []RowOutcome, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Quotes, m.Outcomes, nil
}

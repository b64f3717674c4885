package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vocalis/internal/port"
)

// MockEnricher is a mock implementation of port.Enricher.
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EnrichOutput), args.Error(1)
}

func (m *MockEnricher) Name() string {
	args := m.Called()
	return args.String(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vocalis/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context, input service.StartSessionInput) (*service.TurnOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TurnOutput), args.Error(1)
}

func (m *MockSessionService) SubmitTurn(ctx context.Context, id uuid.UUID, input service.SubmitTurnInput) (*service.TurnOutput, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TurnOutput), args.Error(1)
}

func (m *MockSessionService) SetField(ctx context.Context, id uuid.UUID, input service.SetFieldInput) (*service.SessionView, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) Export(ctx context.Context, id uuid.UUID) (*service.ExportOutput, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}

func (m *MockSessionService) Discard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

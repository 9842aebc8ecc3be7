package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"glosaguard/internal/domain"
)

// MockFindingRepo is a mock implementation of port.FindingRepository.
type MockFindingRepo struct {
	mock.Mock
}

func (m *MockFindingRepo) ReplaceForSubmission(ctx context.Context, submissionID uuid.UUID, findings []domain.ValidationFinding) error {
	args := m.Called(ctx, submissionID, findings)
	return args.Error(0)
}

func (m *MockFindingRepo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.ValidationFinding, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationFinding), args.Error(1)
}

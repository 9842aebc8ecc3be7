package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"glosaguard/internal/domain"
)

// MockGuideRepo is a mock implementation of port.GuideRepository.
type MockGuideRepo struct {
	mock.Mock
}

func (m *MockGuideRepo) Upsert(ctx context.Context, guide *domain.GuideRecord) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *MockGuideRepo) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.GuideRecord, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideRecord), args.Error(1)
}

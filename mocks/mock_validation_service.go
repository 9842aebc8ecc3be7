package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"glosaguard/internal/validator"
)

// MockValidationService is a mock implementation of service.ValidationService.
type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) Check(data []byte) *validator.CheckResult {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*validator.CheckResult)
}

func (m *MockValidationService) ValidateSubmission(ctx context.Context, submissionID uuid.UUID, data []byte) (*validator.ValidationResponse, error) {
	args := m.Called(ctx, submissionID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.ValidationResponse), args.Error(1)
}

func (m *MockValidationService) GetValidation(ctx context.Context, submissionID uuid.UUID) (*validator.ValidationResponse, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.ValidationResponse), args.Error(1)
}

func (m *MockValidationService) EditGuide(ctx context.Context, submissionID uuid.UUID, patch map[string]string) (*validator.ValidationResponse, error) {
	args := m.Called(ctx, submissionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.ValidationResponse), args.Error(1)
}

func (m *MockValidationService) Rules() []validator.Validator {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]validator.Validator)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"glosaguard/internal/validator"
)

// ValidationService defines the guide validation contract consumed by handlers.
type ValidationService interface {
	Check(data []byte) *validator.CheckResult
	ValidateSubmission(ctx context.Context, submissionID uuid.UUID, data []byte) (*validator.ValidationResponse, error)
	GetValidation(ctx context.Context, submissionID uuid.UUID) (*validator.ValidationResponse, error)
	EditGuide(ctx context.Context, submissionID uuid.UUID, patch map[string]string) (*validator.ValidationResponse, error)
	Rules() []validator.Validator
}

var _ ValidationService = (*validator.Engine)(nil)

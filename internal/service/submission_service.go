package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"glosaguard/internal/domain"
	"glosaguard/internal/metrics"
	"glosaguard/internal/port"
)

// CreateSubmissionInput is the DTO for creating a submission.
type CreateSubmissionInput struct {
	PayerCode   string
	BatchNumber string
	Origin      domain.SubmissionOrigin
	Notes       string
}

// SubmissionService defines the submission (lote) management contract.
type SubmissionService interface {
	Create(ctx context.Context, input *CreateSubmissionInput) (*domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, filter port.SubmissionFilter, offset, limit int) ([]domain.Submission, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) (*domain.Submission, error)
}

type submissionService struct {
	subRepo port.SubmissionRepository
}

// NewSubmissionService creates a new SubmissionService implementation.
func NewSubmissionService(subRepo port.SubmissionRepository) SubmissionService {
	return &submissionService{subRepo: subRepo}
}

func (s *submissionService) Create(ctx context.Context, input *CreateSubmissionInput) (*domain.Submission, error) {
	origin := input.Origin
	if origin == "" {
		origin = domain.OriginXML
	}
	if !domain.ValidSubmissionOrigins[origin] {
		return nil, domain.ErrInvalidOrigin
	}

	sub := &domain.Submission{
		ID:          uuid.New(),
		PayerCode:   strings.TrimSpace(input.PayerCode),
		BatchNumber: strings.TrimSpace(input.BatchNumber),
		Status:      domain.SubmissionNeedsReview,
		Origin:      origin,
		Notes:       input.Notes,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("creating submission: %w", err)
	}

	log.Printf("submissionService.Create: submission %s created (payer=%q, batch=%q)", sub.ID, sub.PayerCode, sub.BatchNumber)
	return sub, nil
}

func (s *submissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return s.subRepo.GetByID(ctx, id)
}

func (s *submissionService) List(ctx context.Context, filter port.SubmissionFilter, offset, limit int) ([]domain.Submission, int, error) {
	if filter.Status != "" && !domain.ValidSubmissionStatuses[filter.Status] {
		return nil, 0, domain.ErrInvalidSubmissionStatus
	}
	return s.subRepo.List(ctx, filter, offset, limit)
}

func (s *submissionService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) (*domain.Submission, error) {
	if !domain.ValidSubmissionStatuses[status] {
		return nil, domain.ErrInvalidSubmissionStatus
	}

	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == status {
		return sub, nil
	}

	if err := s.subRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("updating submission status: %w", err)
	}
	metrics.RecordSubmissionStatusChange(string(sub.Status), string(status))
	log.Printf("submissionService.UpdateStatus: submission %s %s -> %s", id, sub.Status, status)

	sub.Status = status
	return sub, nil
}

package port

import (
	"context"

	"github.com/google/uuid"

	"glosaguard/internal/domain"
)

// SubmissionFilter narrows a submission listing. Empty fields match everything.
type SubmissionFilter struct {
	Status    domain.SubmissionStatus
	PayerCode string
}

// SubmissionRepository defines the contract for submission (lote) persistence.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	List(ctx context.Context, filter SubmissionFilter, offset, limit int) ([]domain.Submission, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error
	UpdateRisk(ctx context.Context, sub *domain.Submission) error
}

// GuideRepository defines the contract for extracted guide persistence.
type GuideRepository interface {
	Upsert(ctx context.Context, guide *domain.GuideRecord) error
	GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.GuideRecord, error)
}

// FindingRepository defines the contract for validation finding persistence.
type FindingRepository interface {
	// ReplaceForSubmission deletes every finding stored for the submission and
	// inserts the given set in one transaction.
	ReplaceForSubmission(ctx context.Context, submissionID uuid.UUID, findings []domain.ValidationFinding) error
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.ValidationFinding, error)
}

// Transactor runs fn inside one database transaction. Repository calls made
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"glosaguard/internal/domain"
	"glosaguard/internal/port"
)

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	defer observe("submission.create", time.Now())
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `INSERT INTO submissions (
		id, payer_code, batch_number, status, risk_score, origin,
		total_value, guide_count, notes, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10, $11
	)`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.PayerCode, sub.BatchNumber, sub.Status, sub.RiskScore, sub.Origin,
		sub.TotalValue, sub.GuideCount, sub.Notes, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("submissionRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	defer observe("submission.get", time.Now())
	var sub domain.Submission
	err := r.db.GetContext(ctx, &sub, "SELECT * FROM submissions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("submissionRepo.GetByID: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepo) List(ctx context.Context, filter port.SubmissionFilter, offset, limit int) ([]domain.Submission, int, error) {
	defer observe("submission.list", time.Now())
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.PayerCode != "" {
		args = append(args, filter.PayerCode)
		conds = append(conds, fmt.Sprintf("payer_code = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM submissions"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM submissions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	subs := []domain.Submission{}
	if err := r.db.SelectContext(ctx, &subs, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("submissionRepo.List: %w", err)
	}
	return subs, total, nil
}

func (r *submissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error {
	defer observe("submission.update_status", time.Now())
	result, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("submissionRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *submissionRepo) UpdateRisk(ctx context.Context, sub *domain.Submission) error {
	defer observe("submission.update_risk", time.Now())
	sub.UpdatedAt = time.Now().UTC()
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE submissions SET
			risk_score = $1, status = $2, total_value = $3,
			guide_count = $4, updated_at = $5
		 WHERE id = $6`,
		sub.RiskScore, sub.Status, sub.TotalValue,
		sub.GuideCount, sub.UpdatedAt, sub.ID)
	if err != nil {
		return fmt.Errorf("submissionRepo.UpdateRisk: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

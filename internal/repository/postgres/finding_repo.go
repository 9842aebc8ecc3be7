package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"glosaguard/internal/domain"
	"glosaguard/internal/port"
)

const findingColumns = 11

type findingRepo struct {
	db *sqlx.DB
}

// NewFindingRepo creates a new PostgreSQL-backed FindingRepository.
func NewFindingRepo(db *sqlx.DB) port.FindingRepository {
	return &findingRepo{db: db}
}

func (r *findingRepo) ReplaceForSubmission(ctx context.Context, submissionID uuid.UUID, findings []domain.ValidationFinding) error {
	defer observe("finding.replace", time.Now())
	return NewTransactor(r.db).WithinTx(ctx, func(ctx context.Context) error {
		exec := executor(ctx, r.db)
		if _, err := exec.ExecContext(ctx,
			"DELETE FROM validation_findings WHERE submission_id = $1", submissionID); err != nil {
			return fmt.Errorf("findingRepo.ReplaceForSubmission delete: %w", err)
		}
		if len(findings) == 0 {
			return nil
		}
		query, args := buildFindingInsert(submissionID, findings)
		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("findingRepo.ReplaceForSubmission insert: %w", err)
		}
		return nil
	})
}

func buildFindingInsert(submissionID uuid.UUID, findings []domain.ValidationFinding) (string, []interface{}) {
	now := time.Now().UTC()
	valueStrings := make([]string, 0, len(findings))
	valueArgs := make([]interface{}, 0, len(findings)*findingColumns)

	for i := range findings {
		f := &findings[i]
		if f.ID == uuid.Nil {
			f.ID = uuid.New()
		}
		f.SubmissionID = submissionID
		f.Position = i
		f.CreatedAt = now

		placeholders := make([]string, findingColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", i*findingColumns+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")
		valueArgs = append(valueArgs,
			f.ID, f.SubmissionID, f.Position, f.Category, f.Rule, f.Field,
			f.Status, f.Message, f.Details, f.Critical, f.CreatedAt)
	}

	query := fmt.Sprintf(
		`INSERT INTO validation_findings (
			id, submission_id, position, category, rule, field,
			status, message, details, critical, created_at
		) VALUES %s`,
		strings.Join(valueStrings, ", "))
	return query, valueArgs
}

func (r *findingRepo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]domain.ValidationFinding, error) {
	defer observe("finding.list", time.Now())
	var findings []domain.ValidationFinding
	err := r.db.SelectContext(ctx, &findings,
		"SELECT * FROM validation_findings WHERE submission_id = $1 ORDER BY position",
		submissionID)
	if err != nil {
		return nil, fmt.Errorf("findingRepo.ListBySubmission: %w", err)
	}
	return findings, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"glosaguard/internal/domain"
	"glosaguard/internal/port"
)

type guideRepo struct {
	db *sqlx.DB
}

// NewGuideRepo creates a new PostgreSQL-backed GuideRepository.
func NewGuideRepo(db *sqlx.DB) port.GuideRepository {
	return &guideRepo{db: db}
}

func (r *guideRepo) Upsert(ctx context.Context, g *domain.GuideRecord) error {
	defer observe("guide.upsert", time.Now())
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now

	query := `INSERT INTO guides (
		submission_id, patient_name, patient_cpf, patient_card_number,
		procedure_tuss_code, procedure_cid, procedure_value, procedure_date,
		physician_name, physician_license_number, payer_code, payer_name,
		created_at, updated_at
	) VALUES (
		:submission_id, :patient_name, :patient_cpf, :patient_card_number,
		:procedure_tuss_code, :procedure_cid, :procedure_value, :procedure_date,
		:physician_name, :physician_license_number, :payer_code, :payer_name,
		:created_at, :updated_at
	)
	ON CONFLICT (submission_id) DO UPDATE SET
		patient_name = EXCLUDED.patient_name,
		patient_cpf = EXCLUDED.patient_cpf,
		patient_card_number = EXCLUDED.patient_card_number,
		procedure_tuss_code = EXCLUDED.procedure_tuss_code,
		procedure_cid = EXCLUDED.procedure_cid,
		procedure_value = EXCLUDED.procedure_value,
		procedure_date = EXCLUDED.procedure_date,
		physician_name = EXCLUDED.physician_name,
		physician_license_number = EXCLUDED.physician_license_number,
		payer_code = EXCLUDED.payer_code,
		payer_name = EXCLUDED.payer_name,
		updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, g); err != nil {
		return fmt.Errorf("guideRepo.Upsert: %w", err)
	}
	return nil
}

func (r *guideRepo) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*domain.GuideRecord, error) {
	defer observe("guide.get", time.Now())
	var g domain.GuideRecord
	err := r.db.GetContext(ctx, &g, "SELECT * FROM guides WHERE submission_id = $1", submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGuideNotFound
		}
		return nil, fmt.Errorf("guideRepo.GetBySubmission: %w", err)
	}
	return &g, nil
}

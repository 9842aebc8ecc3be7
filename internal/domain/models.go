package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a batch of billing guides sent (or about to be sent) to a payer.
type Submission struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	PayerCode   string           `db:"payer_code" json:"payer_code"`
	BatchNumber string           `db:"batch_number" json:"batch_number"`
	Status      SubmissionStatus `db:"status" json:"status"`
	RiskScore   int              `db:"risk_score" json:"risk_score"`
	Origin      SubmissionOrigin `db:"origin" json:"origin"`
	TotalValue  int64            `db:"total_value" json:"total_value"`
	GuideCount  int              `db:"guide_count" json:"guide_count"`
	Notes       string           `db:"notes" json:"notes"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// GuideRecord is the persisted form of the guide extracted from a submission's XML.
type GuideRecord struct {
	SubmissionID           uuid.UUID `db:"submission_id" json:"submission_id"`
	PatientName            string    `db:"patient_name" json:"patient_name"`
	PatientCPF             string    `db:"patient_cpf" json:"patient_cpf"`
	PatientCardNumber      string    `db:"patient_card_number" json:"patient_card_number"`
	ProcedureTUSSCode      string    `db:"procedure_tuss_code" json:"procedure_tuss_code"`
	ProcedureCID           string    `db:"procedure_cid" json:"procedure_cid"`
	ProcedureValue         int64     `db:"procedure_value" json:"procedure_value"`
	ProcedureDate          string    `db:"procedure_date" json:"procedure_date"`
	PhysicianName          string    `db:"physician_name" json:"physician_name"`
	PhysicianLicenseNumber string    `db:"physician_license_number" json:"physician_license_number"`
	PayerCode              string    `db:"payer_code" json:"payer_code"`
	PayerName              string    `db:"payer_name" json:"payer_name"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time `db:"updated_at" json:"updated_at"`
}

// ValidationFinding is a stored validation finding for a submission.
// Position preserves the pass order the findings were produced in.
type ValidationFinding struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	SubmissionID uuid.UUID       `db:"submission_id" json:"submission_id"`
	Position     int             `db:"position" json:"position"`
	Category     FindingCategory `db:"category" json:"category"`
	Rule         string          `db:"rule" json:"rule"`
	Field        string          `db:"field" json:"field"`
	Status       FindingStatus   `db:"status" json:"status"`
	Message      string          `db:"message" json:"message"`
	Details      string          `db:"details" json:"details,omitempty"`
	Critical     bool            `db:"critical" json:"critical"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// FindingStatus implements risk.Finding.
func (f ValidationFinding) FindingStatus() FindingStatus { return f.Status }

// IsCritical implements risk.Finding.
func (f ValidationFinding) IsCritical() bool { return f.Critical }

package validator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"glosaguard/internal/domain"
	"glosaguard/internal/metrics"
	"glosaguard/internal/port"
	"glosaguard/internal/risk"
	"glosaguard/internal/validator/tiss"
)

// Engine orchestrates guide validation and keeps the stored finding set,
// extracted guide and risk score of a submission consistent.
type Engine struct {
	parser      *tiss.Parser
	registry    *Registry
	policy      risk.Policy
	subRepo     port.SubmissionRepository
	guideRepo   port.GuideRepository
	findingRepo port.FindingRepository
	tx          port.Transactor
}

// NewEngine creates a new validation engine. The registry must hold the
// same rules the parser runs, so that single-field revalidation matches a
// full parse. A nil tx runs the writes of a validation without a shared
// transaction.
func NewEngine(
	parser *tiss.Parser,
	registry *Registry,
	policy risk.Policy,
	subRepo port.SubmissionRepository,
	guideRepo port.GuideRepository,
	findingRepo port.FindingRepository,
	tx port.Transactor,
) *Engine {
	if tx == nil {
		tx = noTx{}
	}
	return &Engine{
		parser:      parser,
		registry:    registry,
		policy:      policy,
		subRepo:     subRepo,
		guideRepo:   guideRepo,
		findingRepo: findingRepo,
		tx:          tx,
	}
}

type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ValidationResponse is the API response for a submission's validation state.
type ValidationResponse struct {
	SubmissionID  uuid.UUID                  `json:"submission_id"`
	Status        domain.SubmissionStatus    `json:"status"`
	RiskScore     int                        `json:"risk_score"`
	RiskLevel     domain.RiskLevel           `json:"risk_level"`
	Valid         bool                       `json:"valid"`
	Summary       ValidationSummary          `json:"summary"`
	Findings      []domain.ValidationFinding `json:"findings"`
	FieldStatuses map[string]*FieldStatus    `json:"field_statuses"`
	Guide         *tiss.Guide                `json:"guide,omitempty"`
}

// ValidationSummary holds aggregate counts of findings.
type ValidationSummary struct {
	Total          int `json:"total"`
	Approved       int `json:"approved"`
	Errors         int `json:"errors"`
	Warnings       int `json:"warnings"`
	CriticalErrors int `json:"critical_errors"`
}

// CheckResult is the outcome of a stateless check.
type CheckResult struct {
	Valid     bool                    `json:"valid"`
	Findings  []tiss.Finding          `json:"findings"`
	Data      *tiss.Guide             `json:"data,omitempty"`
	RiskScore int                     `json:"risk_score"`
	RiskLevel domain.RiskLevel        `json:"risk_level"`
	Status    domain.SubmissionStatus `json:"status"`
}

// DeriveStatus maps a risk level to a submission status. A blocking finding
// keeps a low-risk submission out of the ready state.
func DeriveStatus(level domain.RiskLevel, blocking bool) domain.SubmissionStatus {
	switch level {
	case domain.RiskHigh:
		return domain.SubmissionCritical
	case domain.RiskMedium:
		return domain.SubmissionNeedsReview
	}
	if blocking {
		return domain.SubmissionNeedsReview
	}
	return domain.SubmissionReady
}

func hasBlocking[F risk.Finding](findings []F) bool {
	for _, f := range findings {
		if f.FindingStatus() == domain.FindingError && f.IsCritical() {
			return true
		}
	}
	return false
}

// Rules returns the registered guide rules in evaluation order.
func (e *Engine) Rules() []Validator {
	return e.registry.All()
}

// Check parses and scores a document without touching storage.
func (e *Engine) Check(data []byte) *CheckResult {
	start := time.Now()
	res := e.parser.Parse(data)
	score, level := risk.Evaluate(e.policy, res.Findings)
	recordRun("check", res.Valid, level, score, start, res.Findings)

	return &CheckResult{
		Valid:     res.Valid,
		Findings:  res.Findings,
		Data:      res.Data,
		RiskScore: score,
		RiskLevel: level,
		Status:    DeriveStatus(level, hasBlocking(res.Findings)),
	}
}

// ValidateSubmission parses the submission's XML, replaces its stored
// findings and guide, and recomputes its risk score and status.
func (e *Engine) ValidateSubmission(ctx context.Context, submissionID uuid.UUID, data []byte) (*ValidationResponse, error) {
	start := time.Now()
	sub, err := e.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	res := e.parser.Parse(data)
	findings := toDomainFindings(submissionID, res.Findings)

	var rec *domain.GuideRecord
	sub.TotalValue, sub.GuideCount = 0, 0
	if res.Data != nil {
		rec = guideRecord(submissionID, res.Data)
		sub.TotalValue, sub.GuideCount = res.Data.Procedure.Value, 1
	}

	level, err := e.persist(ctx, submissionID, sub, rec, findings)
	if err != nil {
		return nil, err
	}
	recordRun("submission", res.Valid, level, sub.RiskScore, start, res.Findings)

	log.Printf("validator.Engine: submission %s validated, status=%s, score=%d, findings=%d",
		submissionID, sub.Status, sub.RiskScore, len(findings))
	return e.buildResponse(sub, findings, res.Data), nil
}

// GetValidation loads the stored findings and guide for a submission.
func (e *Engine) GetValidation(ctx context.Context, submissionID uuid.UUID) (*ValidationResponse, error) {
	sub, err := e.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	findings, err := e.findingRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("loading findings: %w", err)
	}

	var guide *tiss.Guide
	rec, err := e.guideRepo.GetBySubmission(ctx, submissionID)
	switch {
	case err == nil:
		guide = guideFromRecord(rec)
	case !errors.Is(err, domain.ErrGuideNotFound):
		return nil, fmt.Errorf("loading guide: %w", err)
	}

	return e.buildResponse(sub, findings, guide), nil
}

// EditGuide applies manual corrections to a submission's stored guide,
// reruns only the rules bound to the changed fields and recomputes the
// score from the complete finding set.
func (e *Engine) EditGuide(ctx context.Context, submissionID uuid.UUID, patch map[string]string) (*ValidationResponse, error) {
	if len(patch) == 0 {
		return nil, domain.ErrEmptyGuidePatch
	}
	for field := range patch {
		if guideSetters[field] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownGuideField, field)
		}
	}

	sub, err := e.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	rec, err := e.guideRepo.GetBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	findings, err := e.findingRepo.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("loading findings: %w", err)
	}

	guide := guideFromRecord(rec)
	for _, field := range EditableFields() {
		v, ok := patch[field]
		if !ok {
			continue
		}
		guideSetters[field](guide, v)
		if !e.registry.HasField(field) {
			continue
		}
		var fresh []tiss.Finding
		for _, rule := range e.registry.ForField(field) {
			fresh = append(fresh, rule.Validate(guide)...)
		}
		findings = replaceFieldFindings(findings, field, toDomainFindings(submissionID, fresh))
	}
	e.sortFindings(findings)

	updated := guideRecord(submissionID, guide)
	updated.CreatedAt = rec.CreatedAt
	sub.TotalValue, sub.GuideCount = guide.Procedure.Value, 1
	if _, err := e.persist(ctx, submissionID, sub, updated, findings); err != nil {
		return nil, err
	}

	log.Printf("validator.Engine: submission %s guide edited, fields=%d, status=%s, score=%d",
		submissionID, len(patch), sub.Status, sub.RiskScore)
	return e.buildResponse(sub, findings, guide), nil
}

// replaceFieldFindings drops every non-structure finding on field and
// appends the fresh ones. Structure findings describe the document, not
// the field, and survive edits.
func replaceFieldFindings(all []domain.ValidationFinding, field string, fresh []domain.ValidationFinding) []domain.ValidationFinding {
	out := make([]domain.ValidationFinding, 0, len(all)+len(fresh))
	for _, f := range all {
		if f.Field == field && f.Category != domain.CategoryStructure {
			continue
		}
		out = append(out, f)
	}
	return append(out, fresh...)
}

// sortFindings restores pass order: unregistered findings (structure) first,
// then registered rules in registration order.
func (e *Engine) sortFindings(findings []domain.ValidationFinding) {
	rank := func(f domain.ValidationFinding) int {
		if i, ok := e.registry.Index(f.Rule); ok {
			return i
		}
		return -1
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return rank(findings[i]) < rank(findings[j])
	})
	for i := range findings {
		findings[i].Position = i
	}
}

// persist writes the finding set, the guide (when rec is non-nil) and the
// recomputed risk of sub in one transaction, so a failed write never leaves
// new findings next to a stale score.
func (e *Engine) persist(ctx context.Context, submissionID uuid.UUID, sub *domain.Submission, rec *domain.GuideRecord, findings []domain.ValidationFinding) (domain.RiskLevel, error) {
	score, level := risk.Evaluate(e.policy, findings)
	prev := sub.Status
	sub.RiskScore = score
	sub.Status = DeriveStatus(level, hasBlocking(findings))

	err := e.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := e.findingRepo.ReplaceForSubmission(ctx, submissionID, findings); err != nil {
			return fmt.Errorf("replacing findings: %w", err)
		}
		if rec != nil {
			if err := e.guideRepo.Upsert(ctx, rec); err != nil {
				return fmt.Errorf("storing guide: %w", err)
			}
		}
		if err := e.subRepo.UpdateRisk(ctx, sub); err != nil {
			return fmt.Errorf("updating risk: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if prev != sub.Status {
		metrics.RecordSubmissionStatusChange(string(prev), string(sub.Status))
	}
	return level, nil
}

func (e *Engine) buildResponse(sub *domain.Submission, findings []domain.ValidationFinding, guide *tiss.Guide) *ValidationResponse {
	if findings == nil {
		findings = []domain.ValidationFinding{}
	}
	counts := risk.Count(findings)
	approved := 0
	for _, f := range findings {
		if f.Status == domain.FindingApproved {
			approved++
		}
	}
	return &ValidationResponse{
		SubmissionID: sub.ID,
		Status:       sub.Status,
		RiskScore:    sub.RiskScore,
		RiskLevel:    e.policy.Level(sub.RiskScore),
		Valid:        counts.Errors == 0,
		Summary: ValidationSummary{
			Total:          len(findings),
			Approved:       approved,
			Errors:         counts.Errors,
			Warnings:       counts.Warnings,
			CriticalErrors: counts.CriticalErrors,
		},
		Findings:      findings,
		FieldStatuses: ComputeFieldStatuses(findings),
		Guide:         guide,
	}
}

func recordRun(source string, valid bool, level domain.RiskLevel, score int, start time.Time, findings []tiss.Finding) {
	metrics.RecordValidation(source, valid, string(level), score, time.Since(start))
	for _, f := range findings {
		metrics.RecordFinding(string(f.Category), string(f.Status))
	}
}

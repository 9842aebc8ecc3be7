package validator

import (
	"glosaguard/internal/domain"
)

// FieldStatus is the rolled-up validation state of a single field path.
type FieldStatus struct {
	Status domain.FindingStatus `json:"status"`
	// Blocking is set when any finding on the field is a critical error.
	Blocking bool     `json:"blocking"`
	Messages []string `json:"messages"`
}

// ComputeFieldStatuses derives per-field statuses from a finding set. The
// worst status wins; messages are collected from non-approved findings only.
func ComputeFieldStatuses(findings []domain.ValidationFinding) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for _, f := range findings {
		fs, ok := statuses[f.Field]
		if !ok {
			fs = &FieldStatus{Status: domain.FindingApproved, Messages: []string{}}
			statuses[f.Field] = fs
		}
		if f.Status.Rank() > fs.Status.Rank() {
			fs.Status = f.Status
		}
		if f.Status == domain.FindingError && f.Critical {
			fs.Blocking = true
		}
		if f.Status != domain.FindingApproved {
			fs.Messages = append(fs.Messages, f.Message)
		}
	}
	return statuses
}

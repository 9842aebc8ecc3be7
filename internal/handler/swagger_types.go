package handler

import (
	"glosaguard/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateSubmissionRequest represents the create submission request body.
type CreateSubmissionRequest struct {
	PayerCode   string                  `json:"payer_code" binding:"required" example:"123456"`
	BatchNumber string                  `json:"batch_number" example:"LOTE-2024-0001"`
	Origin      domain.SubmissionOrigin `json:"origin" example:"xml" enums:"xml,ocr"`
	Notes       string                  `json:"notes" example:"March outpatient batch"`
}

// UpdateStatusRequest represents the manual status transition request body.
type UpdateStatusRequest struct {
	Status domain.SubmissionStatus `json:"status" binding:"required" example:"submitted" enums:"ready,needs_review,critical,submitted,approved,denied"`
}

// EditGuideRequest documents the guide patch body: field path to new value.
type EditGuideRequest map[string]string

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// RuleInfo describes one registered guide rule.
type RuleInfo struct {
	Key      string                 `json:"key" example:"format.patient_cpf"`
	Name     string                 `json:"name" example:"Patient CPF format"`
	Category domain.FindingCategory `json:"category" example:"format"`
	Field    string                 `json:"field" example:"patient.cpf"`
}

// RulesResponse lists the rule catalogue and the fields EditGuide accepts.
type RulesResponse struct {
	Rules          []RuleInfo `json:"rules"`
	EditableFields []string   `json:"editable_fields"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

package tiss

import "glosaguard/internal/domain"

// Guide is the normalized record extracted from a TISS billing guide.
// Every field is best-effort: absent tags leave the zero value.
type Guide struct {
	Patient   Patient   `json:"patient"`
	Procedure Procedure `json:"procedure"`
	Physician Physician `json:"physician"`
	Payer     Payer     `json:"payer"`
}

// Patient identifies the beneficiary.
type Patient struct {
	Name       string `json:"name"`
	CPF        string `json:"cpf"`
	CardNumber string `json:"card_number"`
}

// Procedure describes the billed procedure. Value is in currency minor units (cents).
type Procedure struct {
	TUSSCode string `json:"tuss_code"`
	CID      string `json:"cid"`
	Value    int64  `json:"value"`
	Date     string `json:"date"`
}

// Physician identifies the executing professional.
type Physician struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
}

// Payer identifies the health plan operator.
type Payer struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Finding is a single classified validation outcome.
type Finding struct {
	Field    string                 `json:"field"`
	Status   domain.FindingStatus   `json:"status"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Critical bool                   `json:"critical"`
	Category domain.FindingCategory `json:"category"`
	Rule     string                 `json:"rule,omitempty"`
}

// FindingStatus implements risk.Finding.
func (f Finding) FindingStatus() domain.FindingStatus { return f.Status }

// IsCritical implements risk.Finding.
func (f Finding) IsCritical() bool { return f.Critical }

// ParseResult is the outcome of parsing and validating one document.
// Data is nil only when the document could not be decoded at all.
type ParseResult struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
	Data     *Guide    `json:"data,omitempty"`
}

// Field paths used in findings.
const (
	FieldXML                    = "xml"
	FieldStructure              = "structure"
	FieldPatientName            = "patient.name"
	FieldPatientCPF             = "patient.cpf"
	FieldPatientCardNumber      = "patient.card_number"
	FieldProcedureTUSSCode      = "procedure.tuss_code"
	FieldProcedureCID           = "procedure.cid"
	FieldProcedureValue         = "procedure.value"
	FieldProcedureDate          = "procedure.date"
	FieldPhysicianName          = "physician.name"
	FieldPhysicianLicenseNumber = "physician.license_number"
	FieldPayerCode              = "payer.code"
	FieldPayerName              = "payer.name"
)

func approved(field, msg string, cat domain.FindingCategory, rule string) Finding {
	return Finding{Field: field, Status: domain.FindingApproved, Message: msg, Category: cat, Rule: rule}
}

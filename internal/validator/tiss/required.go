package tiss

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"glosaguard/internal/domain"
)

// requiredFieldValidator checks that a field carries a value.
type requiredFieldValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	label     string
	minLen    int
	missing   domain.FindingStatus
	critical  bool
	extract   func(*Guide) string
}

func (v *requiredFieldValidator) validate(g *Guide) []Finding {
	val := strings.TrimSpace(v.extract(g))
	need := v.minLen
	if need < 1 {
		need = 1
	}
	if utf8.RuneCountInString(val) >= need {
		return []Finding{approved(v.fieldPath, v.label+" is present", domain.CategoryRequiredField, v.ruleKey)}
	}

	f := Finding{
		Field:    v.fieldPath,
		Status:   v.missing,
		Message:  v.label + " is required",
		Critical: v.critical,
		Category: domain.CategoryRequiredField,
		Rule:     v.ruleKey,
	}
	if v.missing == domain.FindingWarning {
		f.Message = v.label + " is not informed"
	}
	if val != "" {
		f.Details = fmt.Sprintf("must have at least %d characters", need)
	}
	return []Finding{f}
}

// requiredFieldValidators returns the presence checks in evaluation order.
func requiredFieldValidators() []*requiredFieldValidator {
	return []*requiredFieldValidator{
		{
			ruleKey: "req.patient_name", ruleName: "Patient name required",
			fieldPath: FieldPatientName, label: "patient name", minLen: 3,
			missing: domain.FindingError, critical: true,
			extract: func(g *Guide) string { return g.Patient.Name },
		},
		{
			ruleKey: "req.patient_cpf", ruleName: "Patient CPF required",
			fieldPath: FieldPatientCPF, label: "patient CPF",
			missing: domain.FindingError, critical: true,
			extract: func(g *Guide) string { return g.Patient.CPF },
		},
		{
			ruleKey: "req.patient_card_number", ruleName: "Card number required",
			fieldPath: FieldPatientCardNumber, label: "card number",
			missing: domain.FindingError, critical: true,
			extract: func(g *Guide) string { return g.Patient.CardNumber },
		},
		{
			ruleKey: "req.procedure_tuss_code", ruleName: "TUSS code required",
			fieldPath: FieldProcedureTUSSCode, label: "TUSS code",
			missing: domain.FindingError, critical: true,
			extract: func(g *Guide) string { return g.Procedure.TUSSCode },
		},
		{
			ruleKey: "req.procedure_cid", ruleName: "CID recommended",
			fieldPath: FieldProcedureCID, label: "CID",
			missing: domain.FindingWarning,
			extract: func(g *Guide) string { return g.Procedure.CID },
		},
		{
			ruleKey: "req.physician_license_number", ruleName: "CRM recommended",
			fieldPath: FieldPhysicianLicenseNumber, label: "physician CRM",
			missing: domain.FindingWarning,
			extract: func(g *Guide) string { return g.Physician.LicenseNumber },
		},
	}
}

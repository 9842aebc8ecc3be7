package tiss

import (
	"regexp"
	"strings"
	"time"

	"glosaguard/internal/domain"
)

var (
	cidPattern     = regexp.MustCompile(`^[A-Z]\d{2}(\.\d{1,2})?$`)
	crmPattern     = regexp.MustCompile(`^\d{4,6}[-/]?[A-Z]{2}$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDatePattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

const (
	cpfLength  = 11
	tussLength = 8
)

// formatValidator checks the shape of a field that is present. Absent
// fields yield no finding; the required-field pass already covers them.
type formatValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	extract   func(*Guide) string
	check     func(value string) (ok bool, msg, details string)
	failure   domain.FindingStatus
	critical  bool
	okMessage string
}

func (v *formatValidator) validate(g *Guide) []Finding {
	val := strings.TrimSpace(v.extract(g))
	if val == "" {
		return nil
	}
	ok, msg, details := v.check(val)
	if ok {
		return []Finding{approved(v.fieldPath, v.okMessage, domain.CategoryFormat, v.ruleKey)}
	}
	return []Finding{{
		Field:    v.fieldPath,
		Status:   v.failure,
		Message:  msg,
		Details:  details,
		Critical: v.critical,
		Category: domain.CategoryFormat,
		Rule:     v.ruleKey,
	}}
}

// formatValidators returns the format checks in evaluation order.
func formatValidators() []*formatValidator {
	return []*formatValidator{
		{
			ruleKey: "format.patient_cpf", ruleName: "Patient CPF format",
			fieldPath: FieldPatientCPF,
			extract:   func(g *Guide) string { return g.Patient.CPF },
			check:     checkCPF,
			failure:   domain.FindingError, critical: true,
			okMessage: "CPF is valid",
		},
		{
			ruleKey: "format.procedure_tuss_code", ruleName: "TUSS code format",
			fieldPath: FieldProcedureTUSSCode,
			extract:   func(g *Guide) string { return g.Procedure.TUSSCode },
			check:     checkTUSS,
			failure:   domain.FindingError, critical: true,
			okMessage: "TUSS code format is valid",
		},
		{
			ruleKey: "format.procedure_cid", ruleName: "CID format",
			fieldPath: FieldProcedureCID,
			extract:   func(g *Guide) string { return g.Procedure.CID },
			check:     checkCID,
			failure:   domain.FindingError,
			okMessage: "CID format is valid",
		},
		{
			ruleKey: "format.physician_license_number", ruleName: "CRM format",
			fieldPath: FieldPhysicianLicenseNumber,
			extract:   func(g *Guide) string { return g.Physician.LicenseNumber },
			check:     checkCRM,
			failure:   domain.FindingWarning,
			okMessage: "CRM format is valid",
		},
		{
			ruleKey: "format.procedure_date", ruleName: "Procedure date format",
			fieldPath: FieldProcedureDate,
			extract:   func(g *Guide) string { return g.Procedure.Date },
			check:     checkDate,
			failure:   domain.FindingError,
			okMessage: "procedure date is valid",
		},
	}
}

func checkCPF(v string) (bool, string, string) {
	d := digitsOnly(v)
	if len(d) != cpfLength {
		return false, "CPF has an invalid format", "expected 11 digits"
	}
	if !ValidCPF(d) {
		return false, "CPF is invalid", "check digits do not match"
	}
	return true, "", ""
}

func checkTUSS(v string) (bool, string, string) {
	if len(digitsOnly(v)) != tussLength {
		return false, "TUSS code has an invalid format", "expected 8 digits"
	}
	return true, "", ""
}

func checkCID(v string) (bool, string, string) {
	if !cidPattern.MatchString(strings.ToUpper(v)) {
		return false, "CID has an invalid format", "expected a letter, two digits and an optional decimal (e.g. A00.0)"
	}
	return true, "", ""
}

func checkCRM(v string) (bool, string, string) {
	if !crmPattern.MatchString(v) {
		return false, "CRM does not follow the standard format", "expected 4-6 digits followed by the state (e.g. 123456-SP)"
	}
	return true, "", ""
}

func checkDate(v string) (bool, string, string) {
	if _, err := parseDate(v); err != nil {
		return false, "procedure date is invalid", "expected YYYY-MM-DD or DD/MM/YYYY"
	}
	return true, "", ""
}

// parseDate accepts ISO (YYYY-MM-DD) and Brazilian (DD/MM/YYYY) dates and
// rejects days that do not exist on the calendar.
func parseDate(s string) (time.Time, error) {
	switch {
	case isoDatePattern.MatchString(s):
		return time.Parse("2006-01-02", s)
	case brDatePattern.MatchString(s):
		return time.Parse("02/01/2006", s)
	}
	return time.Time{}, &time.ParseError{Layout: "2006-01-02", Value: s, Message: ": unsupported date format"}
}

package tiss

import (
	"fmt"
	"time"

	"glosaguard/internal/domain"
)

// businessValidator applies billing policy to extracted values.
type businessValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	validate  func(*Guide) []Finding
}

func businessValidators(opts Options) []*businessValidator {
	return []*businessValidator{
		{
			ruleKey: "biz.procedure_value", ruleName: "Procedure value limits",
			fieldPath: FieldProcedureValue,
			validate:  func(g *Guide) []Finding { return checkValue(g.Procedure.Value, opts.HighValueThreshold) },
		},
		{
			ruleKey: "biz.procedure_date_not_future", ruleName: "Procedure date not in the future",
			fieldPath: FieldProcedureDate,
			validate:  func(g *Guide) []Finding { return checkNotFuture(g.Procedure.Date, opts.now()) },
		},
	}
}

func checkValue(value, threshold int64) []Finding {
	switch {
	case value <= 0:
		return []Finding{{
			Field:    FieldProcedureValue,
			Status:   domain.FindingError,
			Message:  "value must be greater than zero",
			Details:  fmt.Sprintf("got %d", value),
			Critical: true,
			Category: domain.CategoryBusinessRule,
			Rule:     "biz.procedure_value",
		}}
	case value > threshold:
		return []Finding{{
			Field:    FieldProcedureValue,
			Status:   domain.FindingWarning,
			Message:  "high value may require prior authorization",
			Details:  fmt.Sprintf("%d exceeds %d", value, threshold),
			Category: domain.CategoryBusinessRule,
			Rule:     "biz.procedure_value",
		}}
	}
	return []Finding{approved(FieldProcedureValue, "procedure value is within limits", domain.CategoryBusinessRule, "biz.procedure_value")}
}

// checkNotFuture flags a procedure dated after today. Missing or
// unparseable dates are left to the other passes.
func checkNotFuture(raw string, now time.Time) []Finding {
	d, err := parseDate(raw)
	if err != nil {
		return nil
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	if !d.After(today) {
		return nil
	}
	return []Finding{{
		Field:    FieldProcedureDate,
		Status:   domain.FindingError,
		Message:  "procedure date cannot be in the future",
		Details:  fmt.Sprintf("%s is after %s", d.Format("2006-01-02"), today.Format("2006-01-02")),
		Critical: true,
		Category: domain.CategoryBusinessRule,
		Rule:     "biz.procedure_date_not_future",
	}}
}

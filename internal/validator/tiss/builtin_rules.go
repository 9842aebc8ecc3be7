package tiss

import "glosaguard/internal/domain"

// Rule is a single field-level check over an extracted guide.
type Rule struct {
	key      string
	name     string
	category domain.FindingCategory
	field    string
	fn       func(*Guide) []Finding
}

func (r *Rule) Key() string                      { return r.key }
func (r *Rule) Name() string                     { return r.name }
func (r *Rule) Category() domain.FindingCategory { return r.category }
func (r *Rule) Field() string                    { return r.field }

// Validate runs the check. A nil result means the rule had nothing to report.
func (r *Rule) Validate(g *Guide) []Finding { return r.fn(g) }

// AllBuiltinRules returns every guide rule in pass order: required fields,
// then formats, then business rules.
func AllBuiltinRules(opts Options) []*Rule {
	reqVals := requiredFieldValidators()
	fmtVals := formatValidators()
	bizVals := businessValidators(opts)
	all := make([]*Rule, 0, len(reqVals)+len(fmtVals)+len(bizVals))

	for _, v := range reqVals {
		all = append(all, &Rule{
			key: v.ruleKey, name: v.ruleName,
			category: domain.CategoryRequiredField, field: v.fieldPath,
			fn: v.validate,
		})
	}
	for _, v := range fmtVals {
		all = append(all, &Rule{
			key: v.ruleKey, name: v.ruleName,
			category: domain.CategoryFormat, field: v.fieldPath,
			fn: v.validate,
		})
	}
	for _, v := range bizVals {
		all = append(all, &Rule{
			key: v.ruleKey, name: v.ruleName,
			category: domain.CategoryBusinessRule, field: v.fieldPath,
			fn: v.validate,
		})
	}
	return all
}

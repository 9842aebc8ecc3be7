package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glosaguard/internal/domain"
	"glosaguard/internal/validator"
	"glosaguard/internal/validator/tiss"
)

type stubRule struct {
	key, field string
	msg        string
}

func (s stubRule) Key() string                      { return s.key }
func (s stubRule) Name() string                     { return s.key }
func (s stubRule) Category() domain.FindingCategory { return domain.CategoryBusinessRule }
func (s stubRule) Field() string                    { return s.field }
func (s stubRule) Validate(*tiss.Guide) []tiss.Finding {
	return []tiss.Finding{{Field: s.field, Status: domain.FindingApproved, Message: s.msg, Rule: s.key}}
}

func TestRegistry_Register(t *testing.T) {
	r := validator.NewRegistry()
	r.Register(stubRule{key: "a", field: "x"})
	r.Register(stubRule{key: "b", field: "y"})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Key())
	assert.Equal(t, "y", all[1].Field())
	i, ok := r.Index("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := validator.NewRegistry()
	r.Register(stubRule{key: "a", field: "x", msg: "old"})
	r.Register(stubRule{key: "b", field: "x"})
	r.Register(stubRule{key: "a", field: "x", msg: "new"})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Key())
	assert.Equal(t, "new", all[0].Validate(nil)[0].Message)

	i, ok := r.Index("a")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	_, ok = r.Index("zzz")
	assert.False(t, ok)
}

func TestRegistry_ForField(t *testing.T) {
	r := validator.NewRegistry()
	r.Register(stubRule{key: "a", field: "x"})
	r.Register(stubRule{key: "b", field: "y"})
	r.Register(stubRule{key: "c", field: "x"})

	got := r.ForField("x")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key())
	assert.Equal(t, "c", got[1].Key())
	assert.True(t, r.HasField("y"))
	assert.False(t, r.HasField("z"))
	assert.Empty(t, r.ForField("z"))
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := validator.NewRegistry()
	r.Register(stubRule{key: "a", field: "x"})

	all := r.All()
	all[0] = stubRule{key: "hijack"}

	assert.Equal(t, "a", r.All()[0].Key())
}

func TestNewBuiltinRegistry(t *testing.T) {
	rules := tiss.AllBuiltinRules(tiss.DefaultOptions())
	r := validator.NewBuiltinRegistry(rules)

	require.Len(t, r.All(), len(rules))
	for i, rule := range rules {
		idx, ok := r.Index(rule.Key())
		require.True(t, ok, rule.Key())
		assert.Equal(t, i, idx)
	}
	assert.Len(t, r.ForField(tiss.FieldPatientCPF), 2)
	assert.Len(t, r.ForField(tiss.FieldProcedureDate), 2)
}

func TestEditableFields_CoverRuleFields(t *testing.T) {
	editable := map[string]bool{}
	for _, f := range validator.EditableFields() {
		editable[f] = true
	}
	for _, rule := range tiss.AllBuiltinRules(tiss.DefaultOptions()) {
		assert.True(t, editable[rule.Field()], "rule %s bound to non-editable field %s", rule.Key(), rule.Field())
	}
}

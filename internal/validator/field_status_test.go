package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glosaguard/internal/domain"
	"glosaguard/internal/validator"
)

func TestComputeFieldStatuses_AllApproved(t *testing.T) {
	findings := []domain.ValidationFinding{
		{Field: "patient.cpf", Status: domain.FindingApproved, Message: "CPF is present"},
		{Field: "patient.cpf", Status: domain.FindingApproved, Message: "CPF is valid"},
		{Field: "patient.name", Status: domain.FindingApproved, Message: "patient name is present"},
	}

	statuses := validator.ComputeFieldStatuses(findings)

	assert.Len(t, statuses, 2)
	assert.Equal(t, domain.FindingApproved, statuses["patient.cpf"].Status)
	assert.False(t, statuses["patient.cpf"].Blocking)
	assert.Empty(t, statuses["patient.cpf"].Messages)
}

func TestComputeFieldStatuses_WorstWins(t *testing.T) {
	findings := []domain.ValidationFinding{
		{Field: "procedure.value", Status: domain.FindingWarning, Message: "high value may require prior authorization"},
		{Field: "procedure.date", Status: domain.FindingError, Message: "invalid date"},
		{Field: "procedure.date", Status: domain.FindingApproved, Message: "date is present"},
	}

	statuses := validator.ComputeFieldStatuses(findings)

	assert.Equal(t, domain.FindingWarning, statuses["procedure.value"].Status)
	assert.Equal(t, domain.FindingError, statuses["procedure.date"].Status)
	assert.False(t, statuses["procedure.date"].Blocking)
	assert.Equal(t, []string{"invalid date"}, statuses["procedure.date"].Messages)
}

func TestComputeFieldStatuses_Blocking(t *testing.T) {
	findings := []domain.ValidationFinding{
		{Field: "patient.cpf", Status: domain.FindingError, Critical: true, Message: "CPF is required"},
		{Field: "procedure.cid", Status: domain.FindingWarning, Critical: true, Message: "odd"},
	}

	statuses := validator.ComputeFieldStatuses(findings)

	assert.True(t, statuses["patient.cpf"].Blocking)
	assert.False(t, statuses["procedure.cid"].Blocking, "only critical errors block")
}

func TestComputeFieldStatuses_Empty(t *testing.T) {
	assert.Empty(t, validator.ComputeFieldStatuses(nil))
}

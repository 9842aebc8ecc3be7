package risk_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"glosaguard/internal/domain"
	"glosaguard/internal/risk"
)

type finding struct {
	status   domain.FindingStatus
	critical bool
}

func (f finding) FindingStatus() domain.FindingStatus { return f.status }
func (f finding) IsCritical() bool                    { return f.critical }

func TestCount(t *testing.T) {
	c := risk.Count([]finding{
		{domain.FindingApproved, false},
		{domain.FindingApproved, true},
		{domain.FindingWarning, false},
		{domain.FindingWarning, true},
		{domain.FindingError, false},
		{domain.FindingError, true},
	})
	assert.Equal(t, risk.Counts{Errors: 2, Warnings: 2, CriticalErrors: 1}, c)
}

func TestPolicy_Score(t *testing.T) {
	p := risk.DefaultPolicy()
	tests := []struct {
		name   string
		counts risk.Counts
		want   int
	}{
		{"nothing", risk.Counts{}, 0},
		{"two warnings", risk.Counts{Warnings: 2}, 16},
		{"one error", risk.Counts{Errors: 1}, 20},
		{"one critical error", risk.Counts{Errors: 1, CriticalErrors: 1}, 35},
		{"mixed", risk.Counts{Errors: 2, CriticalErrors: 1, Warnings: 1}, 63},
		{"exactly cap", risk.Counts{Errors: 5}, 100},
		{"saturates", risk.Counts{Errors: 4, CriticalErrors: 4, Warnings: 3}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Score(tt.counts))
		})
	}
}

func TestPolicy_Level(t *testing.T) {
	p := risk.DefaultPolicy()
	tests := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskLow},
		{40, domain.RiskLow},
		{41, domain.RiskMedium},
		{70, domain.RiskMedium},
		{71, domain.RiskHigh},
		{100, domain.RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Level(tt.score), "score %d", tt.score)
	}
}

func TestEvaluate_OrderIndependent(t *testing.T) {
	findings := []finding{
		{domain.FindingError, true},
		{domain.FindingWarning, false},
		{domain.FindingApproved, false},
		{domain.FindingError, false},
		{domain.FindingWarning, false},
	}
	wantScore, wantLevel := risk.Evaluate(risk.DefaultPolicy(), findings)
	assert.Equal(t, 71, wantScore)
	assert.Equal(t, domain.RiskHigh, wantLevel)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]finding(nil), findings...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		score, level := risk.Evaluate(risk.DefaultPolicy(), shuffled)
		assert.Equal(t, wantScore, score)
		assert.Equal(t, wantLevel, level)
	}
}

func TestEvaluate_MonotonicInSeverity(t *testing.T) {
	p := risk.DefaultPolicy()
	base := []finding{{domain.FindingApproved, false}}
	s0, _ := risk.Evaluate(p, base)
	s1, _ := risk.Evaluate(p, append(base, finding{domain.FindingWarning, false}))
	s2, _ := risk.Evaluate(p, append(base, finding{domain.FindingError, false}))
	s3, _ := risk.Evaluate(p, append(base, finding{domain.FindingError, true}))
	assert.Less(t, s0, s1)
	assert.Less(t, s1, s2)
	assert.Less(t, s2, s3)
}

func TestCustomPolicy(t *testing.T) {
	p := risk.Policy{ErrorWeight: 10, CriticalErrorWeight: 0, WarningWeight: 1, MaxScore: 50, MediumAbove: 10, HighAbove: 30}
	score, level := risk.Evaluate(p, []finding{{domain.FindingError, true}, {domain.FindingWarning, false}})
	assert.Equal(t, 11, score)
	assert.Equal(t, domain.RiskMedium, level)
}

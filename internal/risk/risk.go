// Package risk turns a set of validation findings into a bounded glosa risk score.
package risk

import "glosaguard/internal/domain"

// Finding is anything that carries a status and a critical flag.
type Finding interface {
	FindingStatus() domain.FindingStatus
	IsCritical() bool
}

// Counts tallies the findings that contribute to a score.
type Counts struct {
	Errors         int `json:"errors"`
	Warnings       int `json:"warnings"`
	CriticalErrors int `json:"critical_errors"`
}

// Add records one finding.
func (c *Counts) Add(status domain.FindingStatus, critical bool) {
	switch status {
	case domain.FindingError:
		c.Errors++
		if critical {
			c.CriticalErrors++
		}
	case domain.FindingWarning:
		c.Warnings++
	}
}

// Count tallies a complete finding set. Order does not matter.
func Count[F Finding](findings []F) Counts {
	var c Counts
	for _, f := range findings {
		c.Add(f.FindingStatus(), f.IsCritical())
	}
	return c
}

// Policy holds the scoring weights and classification thresholds.
// The defaults are product policy, not algorithm constants.
type Policy struct {
	ErrorWeight         int
	CriticalErrorWeight int
	WarningWeight       int
	MaxScore            int
	MediumAbove         int
	HighAbove           int
}

// DefaultPolicy returns the weights 20/15/8 capped at 100, with bands at 40 and 70.
func DefaultPolicy() Policy {
	return Policy{
		ErrorWeight:         20,
		CriticalErrorWeight: 15,
		WarningWeight:       8,
		MaxScore:            100,
		MediumAbove:         40,
		HighAbove:           70,
	}
}

// Score computes min(MaxScore, errors*ErrorWeight + critical*CriticalErrorWeight + warnings*WarningWeight).
func (p Policy) Score(c Counts) int {
	raw := c.Errors*p.ErrorWeight + c.CriticalErrors*p.CriticalErrorWeight + c.Warnings*p.WarningWeight
	if raw > p.MaxScore {
		return p.MaxScore
	}
	return raw
}

// Level classifies a score. It depends on nothing but the score.
func (p Policy) Level(score int) domain.RiskLevel {
	switch {
	case score > p.HighAbove:
		return domain.RiskHigh
	case score > p.MediumAbove:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// Evaluate counts the findings and returns the score and its level.
func Evaluate[F Finding](p Policy, findings []F) (int, domain.RiskLevel) {
	score := p.Score(Count(findings))
	return score, p.Level(score)
}

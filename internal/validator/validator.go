package validator

import (
	"glosaguard/internal/domain"
	"glosaguard/internal/validator/tiss"
)

// Validator is the interface for a single built-in guide rule.
type Validator interface {
	Validate(g *tiss.Guide) []tiss.Finding
	Key() string
	Name() string
	Category() domain.FindingCategory
	Field() string
}

package tiss

import "glosaguard/internal/domain"

const ruleStructure = "structure.schema"

// checkStructure inspects only the shape of the decoded tree.
func checkStructure(top *Node) []Finding {
	if top.IsEmpty() {
		return []Finding{{
			Field:    FieldXML,
			Status:   domain.FindingError,
			Message:  "document is empty or invalid",
			Critical: true,
			Category: domain.CategoryStructure,
			Rule:     ruleStructure,
		}}
	}
	if container(top) == nil {
		return []Finding{{
			Field:    FieldStructure,
			Status:   domain.FindingError,
			Message:  "document does not follow the expected schema",
			Details:  "expected one of: ans, lote, guias, mensagemTISS",
			Critical: true,
			Category: domain.CategoryStructure,
			Rule:     ruleStructure,
		}}
	}
	return []Finding{approved(FieldStructure, "document structure is valid", domain.CategoryStructure, ruleStructure)}
}

func decodeFailure(err error) Finding {
	return Finding{
		Field:    FieldXML,
		Status:   domain.FindingError,
		Message:  "failed to process document",
		Details:  err.Error(),
		Critical: true,
		Category: domain.CategoryStructure,
		Rule:     "structure.decode",
	}
}

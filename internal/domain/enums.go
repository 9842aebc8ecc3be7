package domain

// FindingStatus is the outcome of a single validation check.
type FindingStatus string

const (
	FindingApproved FindingStatus = "approved"
	FindingWarning  FindingStatus = "warning"
	FindingError    FindingStatus = "error"
)

// Rank orders statuses by severity: approved < warning < error.
func (s FindingStatus) Rank() int {
	switch s {
	case FindingWarning:
		return 1
	case FindingError:
		return 2
	default:
		return 0
	}
}

// FindingCategory identifies the validation pass that produced a finding.
type FindingCategory string

const (
	CategoryStructure     FindingCategory = "structure"
	CategoryRequiredField FindingCategory = "required_field"
	CategoryFormat        FindingCategory = "format"
	CategoryBusinessRule  FindingCategory = "business_rule"
)

// RiskLevel is the coarse classification of a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SubmissionStatus represents the lifecycle of a guide submission (lote).
type SubmissionStatus string

const (
	SubmissionReady       SubmissionStatus = "ready"
	SubmissionNeedsReview SubmissionStatus = "needs_review"
	SubmissionCritical    SubmissionStatus = "critical"
	SubmissionSubmitted   SubmissionStatus = "submitted"
	SubmissionApproved    SubmissionStatus = "approved"
	SubmissionDenied      SubmissionStatus = "denied"
)

// ValidSubmissionStatuses is the set of statuses accepted on manual transitions.
var ValidSubmissionStatuses = map[SubmissionStatus]bool{
	SubmissionReady:       true,
	SubmissionNeedsReview: true,
	SubmissionCritical:    true,
	SubmissionSubmitted:   true,
	SubmissionApproved:    true,
	SubmissionDenied:      true,
}

// SubmissionOrigin records how the guide data entered the system.
type SubmissionOrigin string

const (
	OriginXML SubmissionOrigin = "xml"
	OriginOCR SubmissionOrigin = "ocr"
)

// ValidSubmissionOrigins is the set of accepted origins.
var ValidSubmissionOrigins = map[SubmissionOrigin]bool{
	OriginXML: true,
	OriginOCR: true,
}

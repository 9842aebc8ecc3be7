package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrGuideNotFound           = errors.New("guide not found")
	ErrInvalidSubmissionStatus = errors.New("invalid submission status")
	ErrInvalidOrigin           = errors.New("invalid submission origin")
	ErrDocumentTooLarge        = errors.New("document exceeds maximum allowed size")
	ErrEmptyDocument           = errors.New("document body is empty")
	ErrUnknownGuideField       = errors.New("unknown guide field")
	ErrEmptyGuidePatch         = errors.New("guide patch has no fields")
)

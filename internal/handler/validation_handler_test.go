package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"glosaguard/internal/domain"
	"glosaguard/internal/handler"
	"glosaguard/internal/validator"
	"glosaguard/internal/validator/tiss"
	"glosaguard/mocks"
)

const sampleXML = `<ans><beneficiario><cpf>12345678909</cpf></beneficiario></ans>`

func newValidationHandler(maxBytes int64) (*handler.ValidationHandler, *mocks.MockValidationService) {
	mockSvc := new(mocks.MockValidationService)
	return handler.NewValidationHandler(mockSvc, maxBytes), mockSvc
}

func xmlContext(w *httptest.ResponseRecorder, method, body string, id string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/xml")
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c
}

// --- Check ---

func TestValidationHandler_Check_Success(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	mockSvc.On("Check", []byte(sampleXML)).Return(&validator.CheckResult{
		Valid: false, RiskScore: 35, RiskLevel: domain.RiskLow, Status: domain.SubmissionNeedsReview,
	})

	w := httptest.NewRecorder()
	h.Check(xmlContext(w, http.MethodPost, sampleXML, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    validator.CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 35, resp.Data.RiskScore)
	assert.Equal(t, domain.SubmissionNeedsReview, resp.Data.Status)
}

func TestValidationHandler_Check_EmptyBody(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)

	w := httptest.NewRecorder()
	h.Check(xmlContext(w, http.MethodPost, "  \n ", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_DOCUMENT", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Check", mock.Anything)
}

func TestValidationHandler_Check_TooLarge(t *testing.T) {
	h, mockSvc := newValidationHandler(16)

	w := httptest.NewRecorder()
	h.Check(xmlContext(w, http.MethodPost, sampleXML, ""))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "DOCUMENT_TOO_LARGE", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Check", mock.Anything)
}

// --- Rules ---

func TestValidationHandler_Rules(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	registry := validator.NewBuiltinRegistry(tiss.AllBuiltinRules(tiss.DefaultOptions()))
	mockSvc.On("Rules").Return(registry.All())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/rules", http.NoBody)

	h.Rules(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data handler.RulesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Rules, len(registry.All()))
	assert.Equal(t, "req.patient_name", resp.Data.Rules[0].Key)
	assert.Contains(t, resp.Data.EditableFields, tiss.FieldPatientCPF)
}

// --- Validate ---

func TestValidationHandler_Validate_Success(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()
	mockSvc.On("ValidateSubmission", mock.Anything, id, []byte(sampleXML)).
		Return(&validator.ValidationResponse{SubmissionID: id, RiskScore: 35}, nil)

	w := httptest.NewRecorder()
	h.Validate(xmlContext(w, http.MethodPost, sampleXML, id.String()))

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestValidationHandler_Validate_NotFound(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()
	mockSvc.On("ValidateSubmission", mock.Anything, id, mock.Anything).Return(nil, domain.ErrSubmissionNotFound)

	w := httptest.NewRecorder()
	h.Validate(xmlContext(w, http.MethodPost, sampleXML, id.String()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationHandler_Validate_InvalidID(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)

	w := httptest.NewRecorder()
	h.Validate(xmlContext(w, http.MethodPost, sampleXML, "123"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ValidateSubmission", mock.Anything, mock.Anything, mock.Anything)
}

// --- GetValidation ---

func TestValidationHandler_GetValidation(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()
	mockSvc.On("GetValidation", mock.Anything, id).Return(&validator.ValidationResponse{SubmissionID: id}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetValidation(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

// --- EditGuide ---

func TestValidationHandler_EditGuide_Success(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()
	patch := map[string]string{tiss.FieldPatientCPF: "52998224725"}
	mockSvc.On("EditGuide", mock.Anything, id, patch).Return(&validator.ValidationResponse{SubmissionID: id}, nil)

	body, _ := json.Marshal(patch)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.EditGuide(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestValidationHandler_EditGuide_UnknownField(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()
	mockSvc.On("EditGuide", mock.Anything, id, mock.Anything).Return(nil, domain.ErrUnknownGuideField)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"patient.shoe_size":"42"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.EditGuide(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_FIELD", decodeResponse(t, w).Error.Code)
}

func TestValidationHandler_EditGuide_NonStringValue(t *testing.T) {
	h, mockSvc := newValidationHandler(1 << 20)
	id := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"procedure.value":{"amount":1}}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.EditGuide(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "EditGuide", mock.Anything, mock.Anything, mock.Anything)
}

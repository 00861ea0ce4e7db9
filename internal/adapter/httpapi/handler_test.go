package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-automation/internal/domain/autoerr"
	"portal-automation/internal/domain/entity"
	"portal-automation/internal/infrastructure/logger"
)

type stubRegistrar struct {
	got    entity.AutomationRequest
	result *entity.RegistrationResult
	err    error
}

func (s *stubRegistrar) Run(_ context.Context, req entity.AutomationRequest) (*entity.RegistrationResult, error) {
	s.got = req
	return s.result, s.err
}

const validBody = `{
	"requestId": "req-1",
	"studentId": "stu-9",
	"email": "a@b.com",
	"fullNameArabic": "محمد أحمد علي حسن",
	"fullNameEnglish": "Mohamed Ahmed",
	"phone": "01012345678",
	"examLanguage": "اللغة العربية",
	"nationalID": "29901011234567"
}`

func TestRegister_Success(t *testing.T) {
	stub := &stubRegistrar{result: &entity.RegistrationResult{Serial: "102", Status: "مقبول"}}
	router := NewRouter(stub, logger.NewNop(), time.Minute)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/digital-transformation/register", strings.NewReader(validBody))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    entity.RegistrationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "102", resp.Data.Serial)

	assert.Equal(t, "a@b.com", stub.got.Email)
	assert.Equal(t, "محمد أحمد علي حسن", stub.got.FullNameArabic)
	assert.Equal(t, "29901011234567", stub.got.NationalID)
}

func TestRegister_RunnerFailure(t *testing.T) {
	stub := &stubRegistrar{err: &autoerr.NoResultsError{Reason: "results table has zero rows"}}
	router := NewRouter(stub, logger.NewNop(), time.Minute)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/digital-transformation/register", strings.NewReader(validBody))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Data    any    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "zero rows")
	assert.Nil(t, resp.Data, "no partial result alongside an error")
}

func TestRegister_BadJSON(t *testing.T) {
	stub := &stubRegistrar{}
	router := NewRouter(stub, logger.NewNop(), time.Minute)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/digital-transformation/register", strings.NewReader("{not json"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, stub.got.Email, "runner must not be invoked on a bad body")
}

func TestHealthz(t *testing.T) {
	router := NewRouter(&stubRegistrar{}, logger.NewNop(), time.Minute)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

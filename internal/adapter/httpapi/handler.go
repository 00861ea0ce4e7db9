// Package httpapi exposes the registration runner over a single route. The
// payment runner is a library call and has no route here.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"portal-automation/internal/application/port/output"
	"portal-automation/internal/domain/entity"
)

// Registrar runs one registration automation synchronously.
type Registrar interface {
	Run(ctx context.Context, req entity.AutomationRequest) (*entity.RegistrationResult, error)
}

type registerRequest struct {
	RequestID       string `json:"requestId"`
	StudentID       string `json:"studentId"`
	Email           string `json:"email"`
	FullNameArabic  string `json:"fullNameArabic"`
	FullNameEnglish string `json:"fullNameEnglish"`
	Phone           string `json:"phone"`
	ExamLanguage    string `json:"examLanguage"`
	NationalID      string `json:"nationalID"`

	// TransformationType picks the training-type dropdown option on the
	// booking form; optional, index fallback applies when empty.
	TransformationType string `json:"transformationType"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	registrar Registrar
	timeout   time.Duration
	log       output.LoggerPort
}

// NewRouter builds the service router. timeout caps one whole automation
// run; the session teardown still executes when it fires.
func NewRouter(registrar Registrar, log output.LoggerPort, timeout time.Duration) http.Handler {
	h := &Handler{registrar: registrar, timeout: timeout, log: log}

	requestLogger := httplog.NewLogger("portal-automation", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Post("/api/digital-transformation/register", h.register)

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.registrar.Run(ctx, entity.AutomationRequest{
		RequestID:          in.RequestID,
		StudentID:          in.StudentID,
		Email:              in.Email,
		FullNameArabic:     in.FullNameArabic,
		FullNameEnglish:    in.FullNameEnglish,
		Phone:              in.Phone,
		ExamLanguage:       in.ExamLanguage,
		NationalID:         in.NationalID,
		TransformationType: in.TransformationType,
	})
	if err != nil {
		h.log.Error("registration run failed", "requestId", in.RequestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

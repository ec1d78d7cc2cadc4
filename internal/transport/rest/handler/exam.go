package handler

import (
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest/middleware"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// ExamHandler handles exam endpoints
type ExamHandler struct {
	examSvc *service.ExamService
}

// NewExamHandler creates a new exam handler
func NewExamHandler(examSvc *service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// Available handles GET /api/exams/available
func (h *ExamHandler) Available(w http.ResponseWriter, r *http.Request) {
	items, err := h.examSvc.Available(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exams": items,
	})
}

// Start handles POST /api/exams/{templateId}/start
func (h *ExamHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	exam, err := h.examSvc.Start(r.Context(), userID, mux.Vars(r)["templateId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

// Finish handles POST /api/exams/{templateId}/finish
func (h *ExamHandler) Finish(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.FinishExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.examSvc.Finish(r.Context(), userID, mux.Vars(r)["templateId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

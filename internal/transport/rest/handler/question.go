package handler

import (
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest/middleware"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// QuestionHandler handles question bank and moderation endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// Submit handles POST /api/questions
func (h *QuestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	created, err := h.questionSvc.Submit(ctx, middleware.GetUserID(ctx), middleware.IsAdmin(ctx), &q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/admin/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.QuestionFilter{
		Subject:    model.Subject(query.Get("subject")),
		Difficulty: model.Difficulty(query.Get("difficulty")),
		Status:     model.ReviewStatus(query.Get("status")),
		AuthorID:   query.Get("authorId"),
		Limit:      queryInt(r, "limit", 50),
		Offset:     queryInt(r, "offset", 0),
	}

	questions, err := h.questionSvc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// Get handles GET /api/admin/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Update handles PUT /api/admin/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.Question
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.questionSvc.Update(r.Context(), mux.Vars(r)["id"], &patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /api/admin/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.questionSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Approve handles POST /api/admin/questions/{id}/approve
func (h *QuestionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionSvc.Approve(r.Context(), mux.Vars(r)["id"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Reject handles POST /api/admin/questions/{id}/reject
func (h *QuestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionSvc.Reject(r.Context(), mux.Vars(r)["id"], middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SetActiveRequest is the body of PUT /api/admin/questions/{id}/active
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive handles PUT /api/admin/questions/{id}/active
func (h *QuestionHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.questionSvc.SetActive(r.Context(), mux.Vars(r)["id"], req.Active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

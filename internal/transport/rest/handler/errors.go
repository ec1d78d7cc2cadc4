package handler

import (
	"desafiabrasil/internal/service"
	"errors"
	"log"
	"net/http"
)

// InsufficientQuestionsResponse tells the client the exam cannot be built yet
type InsufficientQuestionsResponse struct {
	Error      string `json:"error"`
	TemplateID string `json:"templateId"`
	Required   int    `json:"required"`
	Available  int    `json:"available"`
	Suggestion string `json:"suggestion"`
}

// statusFromError maps service errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrTemplateNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidQuestion):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *service.InsufficientQuestionsError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusUnprocessableEntity, InsufficientQuestionsResponse{
			Error:      "not enough questions to build this exam",
			TemplateID: insufficient.TemplateID,
			Required:   insufficient.Required,
			Available:  insufficient.Available,
			Suggestion: "choose a smaller exam",
		})
		return
	}

	status := statusFromError(err)
	switch status {
	case http.StatusInternalServerError:
		log.Printf("Request failed: %v", err)
		writeError(w, status, "internal server error")
	case http.StatusServiceUnavailable:
		log.Printf("Request failed: %v", err)
		writeError(w, status, service.ErrStoreUnavailable.Error())
	default:
		writeError(w, status, err.Error())
	}
}

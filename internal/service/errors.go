package service

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateNotFound   = errors.New("exam template not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrStoreUnavailable   = errors.New("question store unavailable")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidQuestion    = errors.New("invalid question")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
)

// InsufficientQuestionsError is returned when the bank cannot fill at least
// half of a template
type InsufficientQuestionsError struct {
	TemplateID string
	Required   int
	Available  int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("not enough questions for %s: %d available, %d required",
		e.TemplateID, e.Available, e.Required)
}

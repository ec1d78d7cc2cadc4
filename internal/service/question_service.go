package service

import (
	"context"
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"fmt"
	"log"
	"strings"
)

// QuestionService handles the question bank and its moderation
type QuestionService struct {
	questions    repository.QuestionRepo
	availability cache.AvailabilityCache
}

// NewQuestionService creates a new question service
func NewQuestionService(questions repository.QuestionRepo, availability cache.AvailabilityCache) *QuestionService {
	return &QuestionService{
		questions:    questions,
		availability: availability,
	}
}

// Submit stores a new question. Questions from admins are approved right away,
// everyone else's wait for review.
func (s *QuestionService) Submit(ctx context.Context, authorID string, isAdmin bool, q *model.Question) (*model.Question, error) {
	normalize(q)
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}

	q.ID = ""
	q.AuthorID = authorID
	q.TimesAnswered = 0
	q.TimesCorrect = 0
	q.AccuracyPercent = 0
	q.Active = true
	q.Approved = isAdmin
	q.Rejected = false
	q.ReviewedBy = ""
	q.ReviewedAt = nil

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	if q.Approved {
		s.invalidate(ctx)
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

func (s *QuestionService) List(ctx context.Context, filter model.QuestionFilter) ([]*model.Question, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	questions, err := s.questions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []*model.Question{}
	}
	return questions, nil
}

// Update replaces the editable content of a question
func (s *QuestionService) Update(ctx context.Context, id string, patch *model.Question) (*model.Question, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalize(patch)
	existing.Subject = patch.Subject
	existing.Difficulty = patch.Difficulty
	existing.Prompt = patch.Prompt
	existing.Options = patch.Options
	existing.CorrectOption = patch.CorrectOption
	existing.Explanation = patch.Explanation
	existing.Source = patch.Source
	existing.Year = patch.Year
	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}

	if err := s.questions.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	s.invalidate(ctx)
	return existing, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// Approve makes a question selectable by exam assembly
func (s *QuestionService) Approve(ctx context.Context, id, reviewerID string) (*model.Question, error) {
	return s.review(ctx, id, model.ReviewApproved, reviewerID)
}

// Reject removes a question from review and from exams
func (s *QuestionService) Reject(ctx context.Context, id, reviewerID string) (*model.Question, error) {
	return s.review(ctx, id, model.ReviewRejected, reviewerID)
}

func (s *QuestionService) review(ctx context.Context, id string, status model.ReviewStatus, reviewerID string) (*model.Question, error) {
	q, err := s.questions.SetReview(ctx, id, status, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to review question: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	log.Printf("Question %s %s by %s", id, status, reviewerID)
	s.invalidate(ctx)
	return q, nil
}

// SetActive toggles whether an approved question can be drawn
func (s *QuestionService) SetActive(ctx context.Context, id string, active bool) (*model.Question, error) {
	q, err := s.questions.SetActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	s.invalidate(ctx)
	return q, nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if err := s.availability.Invalidate(ctx); err != nil {
		log.Printf("Availability cache invalidation failed: %v", err)
	}
}

// normalize trims text and upper-cases labels
func normalize(q *model.Question) {
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))
	for i := range q.Options {
		q.Options[i].Label = strings.ToUpper(strings.TrimSpace(q.Options[i].Label))
		q.Options[i].Text = strings.TrimSpace(q.Options[i].Text)
	}
}

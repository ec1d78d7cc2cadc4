package service

import (
	"context"
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/catalog"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"log"
	"time"

	"github.com/google/uuid"
)

// ExamService drives the exam lifecycle around the assembler and grader
type ExamService struct {
	catalog      *catalog.Catalog
	assembler    *Assembler
	grader       *Grader
	sessions     cache.ExamSessionCache
	availability cache.AvailabilityCache
	results      repository.ExamResultRepo
	ranking      *RankingService
	now          func() time.Time
}

// NewExamService creates a new exam service
func NewExamService(
	cat *catalog.Catalog,
	assembler *Assembler,
	grader *Grader,
	sessions cache.ExamSessionCache,
	availability cache.AvailabilityCache,
	results repository.ExamResultRepo,
	ranking *RankingService,
) *ExamService {
	return &ExamService{
		catalog:      cat,
		assembler:    assembler,
		grader:       grader,
		sessions:     sessions,
		availability: availability,
		results:      results,
		ranking:      ranking,
		now:          time.Now,
	}
}

// Available lists the catalog with live availability counts
func (s *ExamService) Available(ctx context.Context) ([]model.TemplateAvailability, error) {
	if cached, err := s.availability.Get(ctx); err != nil {
		log.Printf("Availability cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	items, err := s.assembler.Availability(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.availability.Set(ctx, items); err != nil {
		log.Printf("Availability cache write failed: %v", err)
	}
	return items, nil
}

// Start assembles an exam and opens a session for userID
func (s *ExamService) Start(ctx context.Context, userID, templateID string) (*model.AssembledExam, error) {
	exam, err := s.assembler.Assemble(ctx, templateID)
	if err != nil {
		return nil, err
	}

	session := &model.ExamSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		TemplateID:  exam.TemplateID,
		QuestionIDs: make([]string, len(exam.Questions)),
		StartedAt:   exam.StartedAt,
		ExpiresAt:   exam.StartedAt.Add(time.Duration(exam.TimeLimitSeconds) * time.Second),
	}
	for i, q := range exam.Questions {
		session.QuestionIDs[i] = q.ID
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Printf("Failed to store exam session for user %s: %v", userID, err)
	} else {
		exam.SessionID = session.ID
	}

	log.Printf("User %s started %s with %d questions", userID, exam.TemplateID, exam.TotalQuestions)
	return exam, nil
}

// Finish grades a submission. Everything after grading is best effort.
func (s *ExamService) Finish(ctx context.Context, userID, templateID string, req model.FinishExamRequest) (*model.GradingResult, error) {
	result, err := s.grader.Grade(ctx, templateID, userID, req.Answers)
	if err != nil {
		return nil, err
	}
	tmpl, _ := s.catalog.Get(templateID)

	finishedAt := s.now()
	startedAt := req.StartedAt
	session, err := s.sessions.Get(ctx, userID, templateID)
	if err != nil {
		log.Printf("Failed to read exam session for user %s: %v", userID, err)
	}
	if session == nil && req.FinishedAt != nil {
		finishedAt = *req.FinishedAt
	}
	if session != nil {
		// a server-side session pins both ends to the server clock
		startedAt = &session.StartedAt
		if err := s.sessions.Delete(ctx, userID, templateID); err != nil {
			log.Printf("Failed to close exam session for user %s: %v", userID, err)
		}
	}
	if startedAt != nil && finishedAt.After(*startedAt) {
		elapsed := finishedAt.Sub(*startedAt)
		result.DurationSeconds = int(elapsed / time.Second)
		result.TimeExpired = elapsed > tmpl.TimeLimit()
	}

	record := &model.ExamRecord{
		UserID:         userID,
		TemplateID:     result.TemplateID,
		TemplateName:   result.TemplateName,
		Score:          result.Score,
		Graded:         result.Graded,
		Correct:        result.Correct,
		Percentage:     result.Percentage,
		Classification: result.Classification,
		Subjects:       result.Subjects,
		NewBadges:      result.NewBadges,
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
	}
	if err := s.results.Create(ctx, record); err != nil {
		log.Printf("Failed to store exam history for user %s: %v", userID, err)
	}

	result.Rank = s.ranking.Record(ctx, userID, result.TemplateID, result.TotalScore, result.Score)
	s.ranking.Publish(ctx)

	log.Printf("User %s finished %s: %d/%d (%d%%), %d mistakes, %d unmatched",
		userID, result.TemplateID, result.Correct, result.Graded, result.Percentage, len(result.Mistakes()), len(result.Unmatched))
	return result, nil
}

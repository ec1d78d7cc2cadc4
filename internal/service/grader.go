package service

import (
	"context"
	"desafiabrasil/internal/catalog"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"fmt"
	"log"
)

// Grader scores submitted answers and updates question and user aggregates
type Grader struct {
	catalog   *catalog.Catalog
	questions repository.QuestionRepo
	users     repository.UserRepo
}

// NewGrader creates a new exam grader
func NewGrader(cat *catalog.Catalog, questions repository.QuestionRepo, users repository.UserRepo) *Grader {
	return &Grader{
		catalog:   cat,
		questions: questions,
		users:     users,
	}
}

type subjectTally struct {
	total   int
	correct int
}

// Grade scores answers for userID against templateID.
// Answers that cannot be matched to a stored question are reported as
// unmatched and left out of every count. Once the template and user are known
// grading always produces a result.
func (g *Grader) Grade(ctx context.Context, templateID, userID string, answers []model.SubmittedAnswer) (*model.GradingResult, error) {
	tmpl, ok := g.catalog.Get(templateID)
	if !ok {
		return nil, ErrTemplateNotFound
	}
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	result := &model.GradingResult{
		TemplateID:   tmpl.ID,
		TemplateName: tmpl.Name,
		UserID:       userID,
		Submitted:    len(answers),
		Details:      []model.QuestionOutcome{},
		Unmatched:    []model.UnmatchedAnswer{},
	}
	tallies := make(map[model.Subject]*subjectTally)

	for _, ans := range answers {
		if !ans.Complete() {
			result.Unmatched = append(result.Unmatched, unmatched(ans, model.UnmatchedMalformed))
			continue
		}

		q, err := g.questions.GetByID(ctx, ans.QuestionID)
		if err != nil {
			log.Printf("Grading %s: lookup of question %s failed: %v", tmpl.ID, ans.QuestionID, err)
			result.Unmatched = append(result.Unmatched, unmatched(ans, model.UnmatchedStoreError))
			continue
		}
		if q == nil {
			result.Unmatched = append(result.Unmatched, unmatched(ans, model.UnmatchedNotFound))
			continue
		}

		correct := ans.ChosenOption == q.CorrectOption
		outcome := model.QuestionOutcome{
			QuestionID:    q.ID,
			Subject:       q.Subject,
			ChosenOption:  ans.ChosenOption,
			CorrectOption: q.CorrectOption,
			Correct:       correct,
			Explanation:   q.Explanation,
		}

		t := tallies[q.Subject]
		if t == nil {
			t = &subjectTally{}
			tallies[q.Subject] = t
		}
		t.total++
		result.Graded++
		if correct {
			t.correct++
			result.Correct++
			outcome.Points = tmpl.PointsPerQuestion
			result.Score += tmpl.PointsPerQuestion
		}
		result.Details = append(result.Details, outcome)

		// Statistics are written per answer, outside any transaction.
		if err := g.questions.IncrementAnswerStats(ctx, q.ID, correct); err != nil {
			log.Printf("Grading %s: stats update of question %s failed: %v", tmpl.ID, q.ID, err)
		}
	}

	result.MaxScore = result.Graded * tmpl.PointsPerQuestion
	result.Percentage = RoundPercent(result.Correct, result.Graded)
	result.Classification = Classify(result.Percentage)
	result.Subjects = subjectScores(tallies)
	result.NewBadges = EvaluateBadges(tmpl, user, result.Percentage)

	updated, err := g.users.ApplyExamResult(ctx, userID, result.Score, result.NewBadges)
	if err != nil || updated == nil {
		log.Printf("Grading %s: failed to update user %s aggregates: %v", tmpl.ID, userID, err)
		result.TotalScore = user.TotalScore + result.Score
		result.ExamsCompleted = user.ExamsCompleted + 1
		return result, nil
	}
	result.TotalScore = updated.TotalScore
	result.ExamsCompleted = updated.ExamsCompleted
	return result, nil
}

func unmatched(ans model.SubmittedAnswer, reason model.UnmatchedReason) model.UnmatchedAnswer {
	return model.UnmatchedAnswer{
		QuestionID:   ans.QuestionID,
		ChosenOption: ans.ChosenOption,
		Reason:       reason,
	}
}

// subjectScores lists tallies in the fixed subject order
func subjectScores(tallies map[model.Subject]*subjectTally) []model.SubjectScore {
	scores := make([]model.SubjectScore, 0, len(tallies))
	for _, s := range model.Subjects {
		t, ok := tallies[s]
		if !ok {
			continue
		}
		scores = append(scores, model.SubjectScore{
			Subject:    s,
			Total:      t.total,
			Correct:    t.correct,
			Percentage: RoundPercent(t.correct, t.total),
		})
	}
	return scores
}

package service

import (
	"context"
	"desafiabrasil/internal/catalog"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"fmt"
	"time"
)

// Assembler picks and randomizes the questions of an exam. It never writes.
type Assembler struct {
	catalog   *catalog.Catalog
	questions repository.QuestionRepo
	intn      IntN
	now       func() time.Time
}

// NewAssembler creates a new exam assembler
func NewAssembler(cat *catalog.Catalog, questions repository.QuestionRepo) *Assembler {
	return &Assembler{
		catalog:   cat,
		questions: questions,
		intn:      defaultIntN,
		now:       time.Now,
	}
}

// SetRandom replaces the random source used by the shuffles
func (a *Assembler) SetRandom(intn IntN) {
	a.intn = intn
}

// Assemble builds a sanitized exam for templateID
func (a *Assembler) Assemble(ctx context.Context, templateID string) (*model.AssembledExam, error) {
	tmpl, ok := a.catalog.Get(templateID)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	var selected []*model.Question
	for _, quota := range tmpl.Quotas {
		candidates, err := a.questions.FindBySubjectAndDifficulty(ctx, quota.Subject, tmpl.Difficulties)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		eligible := make([]*model.Question, 0, len(candidates))
		for _, q := range candidates {
			if q.Active && q.Approved && q.Subject == quota.Subject && tmpl.AllowsDifficulty(q.Difficulty) {
				eligible = append(eligible, q)
			}
		}

		shuffle(eligible, a.intn)
		if len(eligible) > quota.Count {
			eligible = eligible[:quota.Count]
		}
		selected = append(selected, eligible...)
	}

	required := tmpl.TotalQuestions()
	if len(selected)*2 < required {
		return nil, &InsufficientQuestionsError{
			TemplateID: tmpl.ID,
			Required:   required,
			Available:  len(selected),
		}
	}

	shuffle(selected, a.intn)

	sanitized := make([]model.SanitizedQuestion, len(selected))
	for i, q := range selected {
		sanitized[i] = q.Sanitize(i + 1)
	}

	return &model.AssembledExam{
		TemplateID:        tmpl.ID,
		Name:              tmpl.Name,
		Questions:         sanitized,
		TotalQuestions:    len(sanitized),
		TimeLimitSeconds:  tmpl.TimeLimitMinutes * 60,
		PointsPerQuestion: tmpl.PointsPerQuestion,
		StartedAt:         a.now(),
	}, nil
}

// Availability counts, per template, how many questions an assembly would
// select right now
func (a *Assembler) Availability(ctx context.Context) ([]model.TemplateAvailability, error) {
	templates := a.catalog.List()
	out := make([]model.TemplateAvailability, 0, len(templates))

	for _, tmpl := range templates {
		item := model.TemplateAvailability{
			Template: tmpl,
			Required: tmpl.TotalQuestions(),
			Subjects: make([]model.SubjectAvailability, 0, len(tmpl.Quotas)),
		}
		for _, quota := range tmpl.Quotas {
			n, err := a.questions.CountBySubjectAndDifficulty(ctx, quota.Subject, tmpl.Difficulties)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
			item.Subjects = append(item.Subjects, model.SubjectAvailability{
				Subject:   quota.Subject,
				Required:  quota.Count,
				Available: n,
			})
			item.Available += min(n, quota.Count)
		}

		switch {
		case item.Available >= item.Required:
			item.Status = model.AvailabilityComplete
		case item.Available*2 >= item.Required:
			item.Status = model.AvailabilityPartial
		default:
			item.Status = model.AvailabilityUnavailable
		}
		out = append(out, item)
	}
	return out, nil
}

package service

import (
	"context"
	"desafiabrasil/internal/model"
	"errors"
	"testing"
)

func newQuestionInput() *model.Question {
	return &model.Question{
		Subject:    model.SubjectHistory,
		Difficulty: model.DifficultyMedium,
		Prompt:     "  Em que ano foi proclamada a República no Brasil?  ",
		Options: []model.Option{
			{Label: "a", Text: "1822"},
			{Label: "b", Text: "1889"},
			{Label: "c", Text: "1930"},
		},
		CorrectOption:   "b",
		TimesAnswered:   99,
		TimesCorrect:    99,
		AccuracyPercent: 100,
		Approved:        true,
	}
}

func TestQuestionService_Submit(t *testing.T) {
	tests := []struct {
		name         string
		isAdmin      bool
		wantApproved bool
		invalidated  int
	}{
		{"student waits for review", false, false, 0},
		{"admin is auto-approved", true, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeQuestionRepo()
			avail := &fakeAvailability{}
			svc := NewQuestionService(repo, avail)

			q, err := svc.Submit(context.Background(), "author-1", tt.isAdmin, newQuestionInput())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Approved != tt.wantApproved || !q.Active || q.AuthorID != "author-1" {
				t.Fatalf("unexpected state: %+v", q)
			}
			if q.TimesAnswered != 0 || q.TimesCorrect != 0 || q.AccuracyPercent != 0 {
				t.Fatalf("counters not reset: %+v", q)
			}
			if q.CorrectOption != "B" || q.Options[0].Label != "A" {
				t.Fatalf("labels not normalized: %+v", q)
			}
			if q.Prompt != "Em que ano foi proclamada a República no Brasil?" {
				t.Fatalf("prompt not trimmed: %q", q.Prompt)
			}
			if avail.invalidated != tt.invalidated {
				t.Fatalf("invalidations = %d, want %d", avail.invalidated, tt.invalidated)
			}
		})
	}
}

func TestQuestionService_SubmitRejectsInvalid(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), &fakeAvailability{})

	q := newQuestionInput()
	q.CorrectOption = "E"
	if _, err := svc.Submit(context.Background(), "a", false, q); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestQuestionService_Moderation(t *testing.T) {
	repo := newFakeQuestionRepo()
	avail := &fakeAvailability{}
	svc := NewQuestionService(repo, avail)
	ctx := context.Background()

	q, err := svc.Submit(ctx, "author-1", false, newQuestionInput())
	if err != nil {
		t.Fatal(err)
	}

	pending, err := svc.List(ctx, model.QuestionFilter{Status: model.ReviewPending})
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending = %d, err = %v", len(pending), err)
	}

	approved, err := svc.Approve(ctx, q.ID, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if !approved.Approved || approved.ReviewedBy != "admin-1" {
		t.Fatalf("not approved: %+v", approved)
	}

	off, err := svc.SetActive(ctx, q.ID, false)
	if err != nil || off.Active {
		t.Fatalf("deactivate: %+v, %v", off, err)
	}

	rejected, err := svc.Reject(ctx, q.ID, "admin-2")
	if err != nil || !rejected.Rejected || rejected.Approved {
		t.Fatalf("reject: %+v, %v", rejected, err)
	}

	if avail.invalidated != 3 {
		t.Errorf("invalidations = %d, want 3", avail.invalidated)
	}

	for _, err := range []error{
		func() error { _, err := svc.Approve(ctx, "missing", "admin"); return err }(),
		func() error { _, err := svc.SetActive(ctx, "missing", true); return err }(),
		func() error { _, err := svc.Get(ctx, "missing"); return err }(),
		svc.Delete(ctx, "missing"),
	} {
		if !errors.Is(err, ErrQuestionNotFound) {
			t.Errorf("expected ErrQuestionNotFound, got %v", err)
		}
	}

	if _, err := svc.List(ctx, model.QuestionFilter{Status: "weird"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestQuestionService_UpdateKeepsCounters(t *testing.T) {
	existing := bank(model.SubjectMathematics, model.DifficultyEasy, 1)[0]
	existing.TimesAnswered = 10
	existing.TimesCorrect = 7
	repo := newFakeQuestionRepo(existing)
	svc := NewQuestionService(repo, &fakeAvailability{})

	patch := newQuestionInput()
	updated, err := svc.Update(context.Background(), existing.ID, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Subject != model.SubjectHistory || updated.CorrectOption != "B" {
		t.Fatalf("content not replaced: %+v", updated)
	}
	if updated.TimesAnswered != 10 || updated.TimesCorrect != 7 || !updated.Approved {
		t.Fatalf("counters or review state changed: %+v", updated)
	}

	bad := newQuestionInput()
	bad.Options = bad.Options[:1]
	if _, err := svc.Update(context.Background(), existing.ID, bad); !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

package service

import (
	"context"
	"desafiabrasil/internal/model"
	"errors"
	"testing"
)

func TestUserService(t *testing.T) {
	users := newFakeUserRepo(newStudent("u1"))
	results := &fakeResultRepo{records: []*model.ExamRecord{
		{ID: "r1", UserID: "u1", Score: 10},
		{ID: "r2", UserID: "u2", Score: 20},
		{ID: "r3", UserID: "u1", Score: 30},
	}}
	svc := NewUserService(users, results)
	ctx := context.Background()

	if _, err := svc.Profile(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	history, err := svc.History(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].ID != "r3" {
		t.Fatalf("history = %+v", history)
	}

	empty, err := svc.History(ctx, "u9", 5)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty history = %v, %v", empty, err)
	}

	if _, err := svc.SetRole(ctx, "u1", "root"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	admin, err := svc.SetRole(ctx, "u1", model.RoleAdmin)
	if err != nil || !admin.IsAdmin() {
		t.Fatalf("promote: %+v, %v", admin, err)
	}
	if _, err := svc.SetRole(ctx, "ghost", model.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

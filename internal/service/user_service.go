package service

import (
	"context"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"fmt"
)

// UserService exposes profiles, exam history and role management
type UserService struct {
	users   repository.UserRepo
	results repository.ExamResultRepo
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepo, results repository.ExamResultRepo) *UserService {
	return &UserService{
		users:   users,
		results: results,
	}
}

func (s *UserService) Profile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// History returns the user's finished exams, newest first
func (s *UserService) History(ctx context.Context, id string, limit int) ([]*model.ExamRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	records, err := s.results.ListByUser(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	if records == nil {
		records = []*model.ExamRecord{}
	}
	return records, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

// SetRole promotes or demotes a user
func (s *UserService) SetRole(ctx context.Context, id, role string) (*model.User, error) {
	if role != model.RoleStudent && role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := s.users.SetRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

package app

import (
	"context"
	"fmt"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// UserService ведёт пользователя бота по шагам проверки снимка.
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

// SetState переводит пользователя в state и возвращает его свежую копию.
func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	// Get заводит пользователя, если он пишет впервые
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateState(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("set state %s: %w", state, err)
	}
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// Finish запоминает оценку и возвращает пользователя в главное меню.
func (s *UserService) Finish(ctx context.Context, userID, chatID int64, a *entity.Assessment, uploaded bool) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.RecordAssessment(a, uploaded)
	user.SetState(entity.StateMainMenu)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package port

import (
	"context"

	"focus-cam/internal/domain/entity"
)

// UserRepository пользователи бота и их состояние в диалоге
type UserRepository interface {
	// Get создаёт пользователя при первом обращении
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	// UpdateState меняет состояние существующего пользователя
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}

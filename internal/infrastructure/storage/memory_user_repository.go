package storage

import (
	"context"
	"errors"
	"sync"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// ErrUserNotFound пользователь ещё не писал боту.
var ErrUserNotFound = errors.New("user not found")

// MemoryUserRepository хранит копии пользователей, поэтому изменения
// видны другим только после Save или UpdateState.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]entity.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает копию пользователя. Новый пользователь создаётся в главном меню,
// сменившийся чат запоминается.
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	u, ok := r.users[userID]
	r.mu.RUnlock()
	if ok && u.ChatID == chatID {
		return &u, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok = r.users[userID]
	if !ok {
		u = *entity.NewUser(userID, chatID)
	}
	u.ChatID = chatID
	r.users[userID] = u
	return &u, nil
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()
	return nil
}

// UpdateState меняет только состояние, не трогая остальные поля.
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.SetState(state)
	r.users[userID] = u
	return nil
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)

package storage

import (
	"context"
	"sync"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// MemoryCaptureRepository история отправок в памяти
type MemoryCaptureRepository struct {
	mu      sync.RWMutex
	records []entity.CaptureRecord
}

// NewMemoryCaptureRepository создаёт пустую историю
func NewMemoryCaptureRepository() *MemoryCaptureRepository {
	return &MemoryCaptureRepository{}
}

// Save добавляет запись
func (r *MemoryCaptureRepository) Save(ctx context.Context, rec *entity.CaptureRecord) error {
	r.mu.Lock()
	r.records = append(r.records, *rec)
	r.mu.Unlock()
	return nil
}

// List возвращает последние записи, новые первыми
func (r *MemoryCaptureRepository) List(ctx context.Context, limit int) ([]entity.CaptureRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.records)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]entity.CaptureRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

// Проверка реализации интерфейса
var _ port.CaptureRepository = (*MemoryCaptureRepository)(nil)

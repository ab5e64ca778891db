package port

import (
	"context"

	"focus-cam/internal/domain/entity"
)

// CaptureRepository история отправок
type CaptureRepository interface {
	// Save сохраняет запись
	Save(ctx context.Context, rec *entity.CaptureRecord) error

	// List возвращает последние записи, новые первыми
	List(ctx context.Context, limit int) ([]entity.CaptureRecord, error)
}

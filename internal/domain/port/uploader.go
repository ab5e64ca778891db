package port

import (
	"context"

	"focus-cam/internal/domain/entity"
)

// Uploader отправляет снимок на удалённый адрес
type Uploader interface {
	// Upload отправляет файл одним полем формы. Ошибка означает сбой транспорта,
	// неуспешный статус возвращается в результате.
	Upload(ctx context.Context, filename string, data []byte) (*entity.UploadResult, error)
}

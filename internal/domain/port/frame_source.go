package port

import (
	"context"
	"image"
)

// FrameSource источник живых кадров (камера)
type FrameSource interface {
	// Open захватывает устройство
	Open(ctx context.Context) error

	// Read возвращает очередной кадр
	Read(ctx context.Context) (image.Image, error)

	// Close освобождает устройство, повторный вызов безопасен
	Close() error
}

package camera

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"focus-cam/internal/domain/port"
	"focus-cam/internal/infrastructure/vision"
)

// StillSource отдаёт одну и ту же картинку как живой поток.
// Подходит для демонстрации без камеры и для тестов.
type StillSource struct {
	mu     sync.Mutex
	frame  image.Image
	path   string
	opened bool
}

// NewStillSource создаёт источник из готового изображения.
func NewStillSource(frame image.Image) *StillSource {
	return &StillSource{frame: frame}
}

// NewStillFileSource создаёт источник, читающий картинку из файла при Open.
func NewStillFileSource(path string) *StillSource {
	return &StillSource{path: path}
}

// Open загружает картинку, если она задана файлом.
func (s *StillSource) Open(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame == nil {
		if s.path == "" {
			return fmt.Errorf("still source has no image")
		}
		data, err := os.ReadFile(s.path)
		if err != nil {
			return fmt.Errorf("read still image: %w", err)
		}
		img, err := vision.Decode(data)
		if err != nil {
			return fmt.Errorf("decode still image %s: %w", s.path, err)
		}
		s.frame = img
	}
	s.opened = true
	return nil
}

// Read возвращает картинку, пока источник открыт.
func (s *StillSource) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return nil, ErrSourceClosed
	}
	return s.frame, nil
}

// SetFrame подменяет текущий кадр.
func (s *StillSource) SetFrame(frame image.Image) {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
}

// Close закрывает источник.
func (s *StillSource) Close() error {
	s.mu.Lock()
	s.opened = false
	s.mu.Unlock()
	return nil
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*StillSource)(nil)

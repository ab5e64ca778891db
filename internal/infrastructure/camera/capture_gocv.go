//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"focus-cam/internal/domain/port"
)

// VideoCaptureSource читает кадры с устройства через OpenCV.
type VideoCaptureSource struct {
	DeviceID int

	mu  sync.Mutex
	cap *gocv.VideoCapture
	buf gocv.Mat
}

// NewVideoCaptureSource создаёт источник для устройства deviceID.
func NewVideoCaptureSource(deviceID int) *VideoCaptureSource {
	return &VideoCaptureSource{DeviceID: deviceID}
}

// Open открывает устройство.
func (s *VideoCaptureSource) Open(ctx context.Context) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cap != nil {
		return nil
	}
	vc, err := gocv.OpenVideoCapture(s.DeviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", s.DeviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("open camera %d: device is not available", s.DeviceID)
	}
	s.cap = vc
	s.buf = gocv.NewMat()
	return nil
}

// Read возвращает очередной кадр.
func (s *VideoCaptureSource) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cap == nil {
		return nil, ErrSourceClosed
	}
	if ok := s.cap.Read(&s.buf); !ok || s.buf.Empty() {
		return nil, errors.New("camera returned an empty frame")
	}
	return s.buf.ToImage()
}

// Close освобождает устройство.
func (s *VideoCaptureSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cap == nil {
		return nil
	}
	s.buf.Close()
	err := s.cap.Close()
	s.cap = nil
	return err
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*VideoCaptureSource)(nil)

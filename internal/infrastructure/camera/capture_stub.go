//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"
	"image"
)

// VideoCaptureSource заглушка для сборки без OpenCV.
type VideoCaptureSource struct {
	DeviceID int
}

// NewVideoCaptureSource создаёт источник-заглушку (без OpenCV).
func NewVideoCaptureSource(deviceID int) *VideoCaptureSource {
	return &VideoCaptureSource{DeviceID: deviceID}
}

// Open возвращает ошибку, если сборка без тега gocv.
func (s *VideoCaptureSource) Open(ctx context.Context) error {
	_ = ctx
	return errors.New("gocv build tag is not enabled")
}

// Read возвращает ошибку, если сборка без тега gocv.
func (s *VideoCaptureSource) Read(ctx context.Context) (image.Image, error) {
	_ = ctx
	return nil, ErrSourceClosed
}

// Close ничего не делает.
func (s *VideoCaptureSource) Close() error {
	return nil
}

//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"image"

	"focus-cam/internal/domain/entity"
)

// GoCVEstimator заглушка для сборки без OpenCV.
type GoCVEstimator struct {
	Width      int
	Height     int
	Thresholds Thresholds
}

// NewGoCVEstimator создаёт оценщик-заглушку (без OpenCV).
func NewGoCVEstimator(width, height int, th Thresholds) *GoCVEstimator {
	return &GoCVEstimator{Width: width, Height: height, Thresholds: th}
}

// Estimate возвращает ошибку, если сборка без тега gocv.
func (e *GoCVEstimator) Estimate(img image.Image) (*entity.Assessment, error) {
	_ = img
	return nil, errors.New("gocv build tag is not enabled")
}

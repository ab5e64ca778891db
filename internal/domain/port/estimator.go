package port

import (
	"image"

	"focus-cam/internal/domain/entity"
)

// QualityEstimator интерфейс оценщика резкости и яркости
type QualityEstimator interface {
	// Estimate считает метрики кадра и флаги готовности
	Estimate(img image.Image) (*entity.Assessment, error)
}

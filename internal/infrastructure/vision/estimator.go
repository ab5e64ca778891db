package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// Размер кадра, на котором считаются метрики.
const (
	DefaultFrameWidth  = 320
	DefaultFrameHeight = 240
)

// Thresholds пороги готовности к снимку.
type Thresholds struct {
	Focus         float64 `yaml:"focus"`
	MinBrightness float64 `yaml:"min_brightness"`
	MaxBrightness float64 `yaml:"max_brightness"`
}

// DefaultThresholds возвращает пороги по умолчанию.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Focus:         100,
		MinBrightness: 80,
		MaxBrightness: 220,
	}
}

// Judge переводит метрики в флаги готовности.
func (t Thresholds) Judge(m entity.FrameMetrics) entity.Readiness {
	return entity.Readiness{
		FocusOK:      m.Focus > t.Focus,
		BrightnessOK: m.Brightness > t.MinBrightness && m.Brightness < t.MaxBrightness,
	}
}

// Estimator оценщик на чистом Go: серый -> лапласиан 3x3 -> дисперсия,
// плюс средняя яркость. Состояния между кадрами не хранит.
type Estimator struct {
	Width      int
	Height     int
	Thresholds Thresholds
}

// NewEstimator создаёт оценщик с фиксированным размером кадра.
func NewEstimator(width, height int, th Thresholds) *Estimator {
	return &Estimator{Width: width, Height: height, Thresholds: th}
}

// Estimate уменьшает кадр и считает резкость и яркость.
func (e *Estimator) Estimate(img image.Image) (*entity.Assessment, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	if e.Width < 3 || e.Height < 3 {
		return nil, fmt.Errorf("invalid frame size %dx%d", e.Width, e.Height)
	}

	frame := Downsample(img, e.Width, e.Height)
	metrics := entity.FrameMetrics{
		Focus:      NonZeroVariance(Laplacian(Grayscale(frame))),
		Brightness: Brightness(frame),
	}

	return &entity.Assessment{
		Metrics:   metrics,
		Readiness: e.Thresholds.Judge(metrics),
		Width:     e.Width,
		Height:    e.Height,
	}, nil
}

// Downsample приводит кадр к размеру width x height.
func Downsample(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && b.Dx() == width && b.Dy() == height {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Grayscale переводит кадр в серый как среднее R, G и B.
func Grayscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			v := (int(c.R) + int(c.G) + int(c.B)) / 3
			gray.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return gray
}

// Laplacian сворачивает внутренние пиксели ядром [0 1 0; 1 -4 1; 0 1 0].
// Края не обрабатываются, для кадра уже 3x3 результат пустой.
func Laplacian(gray *image.Gray) []float64 {
	b := gray.Bounds()
	if b.Dx() < 3 || b.Dy() < 3 {
		return nil
	}
	out := make([]float64, 0, (b.Dx()-2)*(b.Dy()-2))
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			c := int(gray.GrayAt(x, y).Y)
			sum := int(gray.GrayAt(x, y-1).Y) +
				int(gray.GrayAt(x, y+1).Y) +
				int(gray.GrayAt(x-1, y).Y) +
				int(gray.GrayAt(x+1, y).Y) -
				4*c
			out = append(out, float64(sum))
		}
	}
	return out
}

// NonZeroVariance дисперсия ненулевых значений; 0, если таких нет.
func NonZeroVariance(values []float64) float64 {
	nonZero := make([]float64, 0, len(values))
	for _, v := range values {
		if v != 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return 0
	}
	return stat.PopVariance(nonZero, nil)
}

// Brightness средняя яркость 0.299R + 0.587G + 0.114B по всем пикселям.
func Brightness(img *image.RGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	lum := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			lum = append(lum, 0.299*float64(c.R)+0.587*float64(c.G)+0.114*float64(c.B))
		}
	}
	return stat.Mean(lum, nil)
}

// Проверка реализации интерфейса
var _ port.QualityEstimator = (*Estimator)(nil)

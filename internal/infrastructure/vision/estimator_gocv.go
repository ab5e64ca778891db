//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// GoCVEstimator считает те же метрики через OpenCV.
type GoCVEstimator struct {
	Width      int
	Height     int
	Thresholds Thresholds
}

// NewGoCVEstimator создаёт оценщик на OpenCV.
func NewGoCVEstimator(width, height int, th Thresholds) *GoCVEstimator {
	return &GoCVEstimator{Width: width, Height: height, Thresholds: th}
}

// Estimate уменьшает кадр, строит лапласиан и считает метрики.
func (e *GoCVEstimator) Estimate(img image.Image) (*entity.Assessment, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	if e.Width < 3 || e.Height < 3 {
		return nil, fmt.Errorf("invalid frame size %dx%d", e.Width, e.Height)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	resized := mat
	if mat.Cols() != e.Width || mat.Rows() != e.Height {
		resized = gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Pt(e.Width, e.Height), 0, 0, gocv.InterpolationLinear)
	}

	gray, brightness, err := grayAndBrightness(resized)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	values := make([]float64, 0, (lap.Rows()-2)*(lap.Cols()-2))
	for y := 1; y < lap.Rows()-1; y++ {
		for x := 1; x < lap.Cols()-1; x++ {
			values = append(values, lap.GetDoubleAt(y, x))
		}
	}

	metrics := entity.FrameMetrics{
		Focus:      NonZeroVariance(values),
		Brightness: brightness,
	}

	return &entity.Assessment{
		Metrics:   metrics,
		Readiness: e.Thresholds.Judge(metrics),
		Width:     e.Width,
		Height:    e.Height,
	}, nil
}

// grayAndBrightness строит серый кадр как целое среднее каналов
// и считает среднюю яркость по весам 0.299/0.587/0.114.
// ColorBGRToGray здесь не подходит: он взвешивает каналы и округляет.
func grayAndBrightness(bgr gocv.Mat) (gocv.Mat, float64, error) {
	if bgr.Channels() != 3 {
		return gocv.Mat{}, 0, fmt.Errorf("unexpected channel count %d", bgr.Channels())
	}
	src := bgr.ToBytes()
	n := bgr.Rows() * bgr.Cols()
	gray := make([]byte, n)
	lum := make([]float64, n)
	for i := 0; i < n; i++ {
		b, g, r := src[3*i], src[3*i+1], src[3*i+2]
		gray[i] = byte((int(r) + int(g) + int(b)) / 3)
		lum[i] = 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	}

	m, err := gocv.NewMatFromBytes(bgr.Rows(), bgr.Cols(), gocv.MatTypeCV8U, gray)
	if err != nil {
		return gocv.Mat{}, 0, fmt.Errorf("build gray frame: %w", err)
	}
	return m, stat.Mean(lum, nil), nil
}

// Проверка реализации интерфейса
var _ port.QualityEstimator = (*GoCVEstimator)(nil)

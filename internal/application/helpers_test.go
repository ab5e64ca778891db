package app

import (
	"context"
	"image"
	"image/color"
	"sync"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/infrastructure/camera"
	"focus-cam/internal/infrastructure/storage"
	"focus-cam/internal/infrastructure/vision"
)

func sharpFrame() *image.RGBA {
	w, h := vision.DefaultFrameWidth, vision.DefaultFrameHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func flatFrame(v uint8) *image.RGBA {
	w, h := vision.DefaultFrameWidth, vision.DefaultFrameHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func newEstimator() *vision.Estimator {
	return vision.NewEstimator(vision.DefaultFrameWidth, vision.DefaultFrameHeight, vision.DefaultThresholds())
}

type fakeUploader struct {
	mu      sync.Mutex
	calls   int
	status  int
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (*entity.UploadResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	res := &entity.UploadResult{
		ID:         "upload-1",
		StatusCode: f.status,
		Success:    f.status >= 200 && f.status < 300,
	}
	if res.Success {
		res.Message = "upload succeeded"
	} else {
		res.Message = "upload failed: rejected"
	}
	return res, nil
}

func (f *fakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type captureFixture struct {
	source   *camera.StillSource
	uploader *fakeUploader
	history  *storage.MemoryCaptureRepository
	svc      *CaptureService
}

func newCaptureFixture(frame image.Image, status int) *captureFixture {
	f := &captureFixture{
		source:   camera.NewStillSource(frame),
		uploader: &fakeUploader{status: status},
		history:  storage.NewMemoryCaptureRepository(),
	}
	f.svc = NewCaptureService(f.source, newEstimator(), vision.JPEGCodec{Quality: 80}, f.uploader, f.history)
	return f
}

package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// CaptureFilename имя файла снимка в форме отправки.
const CaptureFilename = "capture.jpg"

// Status снимок состояния экрана съёмки для API и хоста.
type Status struct {
	State        entity.SessionState `json:"state"`
	Focus        float64             `json:"focus"`
	Brightness   float64             `json:"brightness"`
	FocusOK      bool                `json:"focus_ok"`
	BrightnessOK bool                `json:"brightness_ok"`
	Ready        bool                `json:"ready"`
	HasCapture   bool                `json:"has_capture"`
	Uploading    bool                `json:"uploading"`
	LastMessage  string              `json:"last_message,omitempty"`
	LastError    string              `json:"last_error,omitempty"`
}

// StatusOf переводит сессию в Status.
func StatusOf(s entity.Session) Status {
	return Status{
		State:        s.State,
		Focus:        s.Metrics.Focus,
		Brightness:   s.Metrics.Brightness,
		FocusOK:      s.Readiness.FocusOK,
		BrightnessOK: s.Readiness.BrightnessOK,
		Ready:        s.Readiness.Ready(),
		HasCapture:   s.HasCapture(),
		Uploading:    s.Uploading,
		LastMessage:  s.LastMessage,
		LastError:    s.LastError,
	}
}

// CaptureService экран съёмки: оценивает каждый кадр, разрешает снимок
// только при хорошей резкости и яркости и отправляет его не более одного раза за раз.
type CaptureService struct {
	source    port.FrameSource
	estimator port.QualityEstimator
	codec     port.ImageCodec
	uploader  port.Uploader
	history   port.CaptureRepository

	mu       sync.Mutex
	session  *entity.Session
	latest   image.Image
	running  bool
	captured entity.FrameMetrics
	listener func(Status)
	now      func() time.Time
}

// NewCaptureService создаёт сервис. history может быть nil.
func NewCaptureService(source port.FrameSource, estimator port.QualityEstimator, codec port.ImageCodec, uploader port.Uploader, history port.CaptureRepository) *CaptureService {
	return &CaptureService{
		source:    source,
		estimator: estimator,
		codec:     codec,
		uploader:  uploader,
		history:   history,
		session:   entity.NewSession(),
		now:       time.Now,
	}
}

// OnStatusChange подписывает fn на смену флагов готовности и завершение отправки.
// fn вызывается вне блокировки.
func (s *CaptureService) OnStatusChange(fn func(Status)) {
	s.mu.Lock()
	s.listener = fn
	s.mu.Unlock()
}

// Start захватывает камеру. Ошибка доступа видна в LastError.
func (s *CaptureService) Start(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("start camera: %w", ErrNotConfigured)
	}
	if err := s.source.Open(ctx); err != nil {
		log.Printf("Camera error: %v", err)
		s.mu.Lock()
		s.session.LastError = "camera unavailable: " + err.Error()
		s.session.State = entity.SessionIdle
		s.mu.Unlock()
		return fmt.Errorf("start camera: %w", err)
	}

	s.mu.Lock()
	s.running = true
	s.session.LastError = ""
	if s.session.State == entity.SessionIdle {
		s.session.State = entity.SessionPreviewing
	}
	s.mu.Unlock()
	return nil
}

// Stop освобождает камеру и сбрасывает флаги.
func (s *CaptureService) Stop() error {
	s.mu.Lock()
	s.running = false
	s.latest = nil
	s.session.Readiness = entity.Readiness{}
	if s.session.State == entity.SessionPreviewing {
		s.session.State = entity.SessionIdle
	}
	s.mu.Unlock()

	if s.source == nil {
		return nil
	}
	return s.source.Close()
}

// Tick читает один кадр и обновляет флаги. Побеждает последний кадр.
func (s *CaptureService) Tick(ctx context.Context) (*entity.Assessment, error) {
	img, err := s.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	a, err := s.estimator.Estimate(img)
	if err != nil {
		return nil, fmt.Errorf("estimate frame: %w", err)
	}

	s.mu.Lock()
	// кадр, прочитанный до Stop, не должен вернуть сброшенные флаги
	if !s.running {
		s.mu.Unlock()
		return nil, ErrNotStarted
	}
	changed := s.session.Readiness != a.Readiness
	s.latest = img
	s.session.Metrics = a.Metrics
	s.session.Readiness = a.Readiness
	notify := s.changedLocked(changed)
	s.mu.Unlock()

	notify()
	return a, nil
}

// Run запускает камеру и оценивает кадр на каждом тике до отмены ctx.
func (s *CaptureService) Run(ctx context.Context, interval time.Duration) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.Stop(); err != nil {
			log.Printf("Camera close error: %v", err)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Printf("Frame error: %v", err)
			}
		}
	}
}

// Capture делает снимок из последнего кадра, если оба флага выставлены.
func (s *CaptureService) Capture(ctx context.Context) ([]byte, error) {
	_ = ctx
	s.mu.Lock()
	switch {
	case s.session.Uploading:
		s.mu.Unlock()
		return nil, ErrUploadInProgress
	case s.latest == nil:
		s.mu.Unlock()
		return nil, ErrNotStarted
	case !s.session.Readiness.Ready():
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	img := s.latest
	metrics := s.session.Metrics
	s.mu.Unlock()

	data, err := s.codec.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("encode capture: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Uploading {
		return nil, ErrUploadInProgress
	}
	s.session.Captured = data
	s.session.State = entity.SessionCaptured
	s.session.LastMessage = ""
	s.captured = metrics
	return data, nil
}

// Retake выбрасывает снимок и возвращает экран в превью.
func (s *CaptureService) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Uploading {
		return ErrUploadInProgress
	}
	s.session.Captured = nil
	s.session.LastMessage = ""
	s.session.State = s.idleState()
	return nil
}

// Upload отправляет снимок. Без повторов: при сбое снимок остаётся,
// а причина попадает в LastMessage.
func (s *CaptureService) Upload(ctx context.Context) (*entity.UploadResult, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("upload: %w", ErrNotConfigured)
	}

	s.mu.Lock()
	if s.session.Uploading {
		s.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	if !s.session.HasCapture() {
		s.mu.Unlock()
		return nil, ErrNothingCaptured
	}
	s.session.Uploading = true
	s.session.State = entity.SessionUploading
	data := s.session.Captured
	metrics := s.captured
	s.mu.Unlock()

	res, err := s.uploader.Upload(ctx, CaptureFilename, data)

	rec := &entity.CaptureRecord{
		CreatedAt: s.now(),
		Metrics:   metrics,
		Bytes:     len(data),
	}

	s.mu.Lock()
	s.session.Uploading = false
	switch {
	case err != nil:
		log.Printf("Upload error: %v", err)
		s.session.LastMessage = "upload failed: " + err.Error()
		s.session.State = entity.SessionCaptured
		rec.Message = s.session.LastMessage
	case !res.Success:
		log.Printf("Upload rejected: status %d", res.StatusCode)
		s.session.LastMessage = res.Message
		s.session.State = entity.SessionCaptured
	default:
		s.session.LastMessage = res.Message
		s.session.Captured = nil
		s.session.State = s.idleState()
	}
	if res != nil {
		rec.ID = res.ID
		rec.StatusCode = res.StatusCode
		rec.Success = res.Success
		rec.Message = res.Message
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	notify := s.changedLocked(true)
	s.mu.Unlock()

	notify()
	s.record(ctx, rec)

	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return res, nil
}

// CaptureAndUpload снимок и отправка одним действием.
func (s *CaptureService) CaptureAndUpload(ctx context.Context) (*entity.UploadResult, error) {
	if _, err := s.Capture(ctx); err != nil {
		return nil, err
	}
	return s.Upload(ctx)
}

// Snapshot возвращает копию сессии.
func (s *CaptureService) Snapshot() entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Status возвращает состояние для API.
func (s *CaptureService) Status() Status {
	return StatusOf(s.Snapshot())
}

// History возвращает последние отправки.
func (s *CaptureService) History(ctx context.Context, limit int) ([]entity.CaptureRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

func (s *CaptureService) idleState() entity.SessionState {
	if s.running {
		return entity.SessionPreviewing
	}
	return entity.SessionIdle
}

// changedLocked готовит уведомление подписчика; вызывать под s.mu.
func (s *CaptureService) changedLocked(changed bool) func() {
	fn := s.listener
	if !changed || fn == nil {
		return func() {}
	}
	st := StatusOf(s.session.Clone())
	return func() { fn(st) }
}

func (s *CaptureService) record(ctx context.Context, rec *entity.CaptureRecord) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, rec); err != nil {
		log.Printf("History error: %v", err)
	}
}

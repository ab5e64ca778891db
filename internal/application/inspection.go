package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// PhotoFilename имя файла присланного снимка в форме отправки.
const PhotoFilename = "photo.jpg"

// InspectionService оценивает готовые снимки (бот, REST) по тем же правилам,
// что и экран съёмки, и отправляет только годные.
type InspectionService struct {
	users     *UserService
	estimator port.QualityEstimator
	codec     port.ImageCodec
	uploader  port.Uploader
	history   port.CaptureRepository
}

// InspectionOutput результат проверки снимка.
type InspectionOutput struct {
	Assessment *entity.Assessment
	Upload     *entity.UploadResult // nil, если снимок не отправлялся
	UploadErr  error
}

// Uploaded сообщает, принят ли снимок сервером.
func (o *InspectionOutput) Uploaded() bool {
	return o.Upload != nil && o.Upload.Success
}

// NewInspectionService создаёт сервис проверки снимков.
func NewInspectionService(users *UserService, estimator port.QualityEstimator, codec port.ImageCodec, uploader port.Uploader, history port.CaptureRepository) *InspectionService {
	return &InspectionService{
		users:     users,
		estimator: estimator,
		codec:     codec,
		uploader:  uploader,
		history:   history,
	}
}

// Assess декодирует снимок и считает метрики.
func (s *InspectionService) Assess(ctx context.Context, photo []byte) (*entity.Assessment, error) {
	_ = ctx
	if s.estimator == nil || s.codec == nil {
		return nil, fmt.Errorf("assess: %w", ErrNotConfigured)
	}
	img, err := s.codec.Decode(photo)
	if err != nil {
		return nil, err
	}
	return s.estimator.Estimate(img)
}

// ProcessPhoto оценивает снимок и отправляет его, если он годный.
func (s *InspectionService) ProcessPhoto(ctx context.Context, photo []byte) (*InspectionOutput, error) {
	a, err := s.Assess(ctx, photo)
	if err != nil {
		return nil, err
	}

	out := &InspectionOutput{Assessment: a}
	if !a.Readiness.Ready() || s.uploader == nil {
		return out, nil
	}

	res, err := s.uploader.Upload(ctx, PhotoFilename, photo)
	out.Upload = res
	rec := &entity.CaptureRecord{
		CreatedAt: time.Now(),
		Metrics:   a.Metrics,
		Bytes:     len(photo),
	}
	if err != nil {
		log.Printf("Upload error: %v", err)
		out.UploadErr = err
		rec.ID = uuid.NewString()
		rec.Message = "upload failed: " + err.Error()
	} else {
		rec.ID = res.ID
		rec.StatusCode = res.StatusCode
		rec.Success = res.Success
		rec.Message = res.Message
	}
	if s.history != nil {
		if err := s.history.Save(ctx, rec); err != nil {
			log.Printf("History error: %v", err)
		}
	}
	return out, nil
}

// AcceptPhoto проверяет снимок пользователя и возвращает его в главное меню.
func (s *InspectionService) AcceptPhoto(ctx context.Context, userID, chatID int64, photo []byte) (*InspectionOutput, error) {
	if s.users == nil {
		return nil, errors.New("user service is not configured")
	}
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	out, err := s.ProcessPhoto(ctx, photo)
	if err != nil {
		if _, cerr := s.users.Cancel(ctx, userID, chatID); cerr != nil {
			log.Printf("Error resetting user: %v", cerr)
		}
		return nil, err
	}

	if _, err := s.users.Finish(ctx, userID, chatID, out.Assessment, out.Uploaded()); err != nil {
		return nil, err
	}
	return out, nil
}

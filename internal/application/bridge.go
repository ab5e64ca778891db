package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// BridgeService обрабатывает сообщения хост-контейнера и кладёт ответы в очередь.
type BridgeService struct {
	capture  *CaptureService
	outbox   port.HostBridge
	redirect port.Redirector
}

type redirectRequest struct {
	Params map[string]string `json:"params"`
}

type uploadReply struct {
	ID         string `json:"id"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// NewBridgeService создаёт мост. redirect может быть nil,
// тогда сообщения redirect отклоняются.
func NewBridgeService(capture *CaptureService, outbox port.HostBridge, redirect port.Redirector) *BridgeService {
	return &BridgeService{
		capture:  capture,
		outbox:   outbox,
		redirect: redirect,
	}
}

// Handle обрабатывает сообщение и возвращает ответ, который также
// уходит в очередь хосту.
func (s *BridgeService) Handle(ctx context.Context, msg entity.BridgeMessage) entity.BridgeMessage {
	reply, err := s.dispatch(ctx, msg)
	if err != nil {
		log.Printf("Bridge %s error: %v", msg.Type, err)
		reply = entity.BridgeError(msg.ID, err)
	}
	s.outbox.Post(reply)
	return reply
}

// Notify отправляет хосту сообщение без запроса.
func (s *BridgeService) Notify(typ string, payload any) error {
	msg, err := entity.NewBridgeMessage(typ, "", payload)
	if err != nil {
		return err
	}
	s.outbox.Post(msg)
	return nil
}

// NotifyStatus сообщает хосту новое состояние экрана съёмки.
func (s *BridgeService) NotifyStatus(st Status) {
	if err := s.Notify(entity.MsgStatus, st); err != nil {
		log.Printf("Bridge notify error: %v", err)
	}
}

// Pending забирает накопленные для хоста сообщения.
func (s *BridgeService) Pending() []entity.BridgeMessage {
	return s.outbox.Drain()
}

func (s *BridgeService) dispatch(ctx context.Context, msg entity.BridgeMessage) (entity.BridgeMessage, error) {
	switch msg.Type {
	case entity.MsgPing:
		return entity.NewBridgeMessage(entity.MsgPong, msg.ID, nil)

	case entity.MsgStatus:
		if s.capture == nil {
			return entity.BridgeMessage{}, ErrNotConfigured
		}
		return entity.NewBridgeMessage(entity.MsgResult, msg.ID, s.capture.Status())

	case entity.MsgCapture:
		if s.capture == nil {
			return entity.BridgeMessage{}, ErrNotConfigured
		}
		res, err := s.capture.CaptureAndUpload(ctx)
		if err != nil {
			return entity.BridgeMessage{}, err
		}
		return entity.NewBridgeMessage(entity.MsgResult, msg.ID, uploadReply{
			ID:         res.ID,
			Success:    res.Success,
			StatusCode: res.StatusCode,
			Message:    res.Message,
		})

	case entity.MsgRetake:
		if s.capture == nil {
			return entity.BridgeMessage{}, ErrNotConfigured
		}
		if err := s.capture.Retake(); err != nil {
			return entity.BridgeMessage{}, err
		}
		return entity.NewBridgeMessage(entity.MsgResult, msg.ID, s.capture.Status())

	case entity.MsgRedirect:
		if s.redirect == nil {
			return entity.BridgeMessage{}, fmt.Errorf("redirect: %w", ErrNotConfigured)
		}
		var req redirectRequest
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return entity.BridgeMessage{}, fmt.Errorf("decode redirect payload: %w", err)
			}
		}
		url, err := s.redirect.RedirectURL(req.Params)
		if err != nil {
			return entity.BridgeMessage{}, err
		}
		return entity.NewBridgeMessage(entity.MsgNavigate, msg.ID, map[string]string{"url": url})

	default:
		return entity.BridgeMessage{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
}

package app

import "errors"

var (
	// ErrNotStarted камера ещё не дала ни одного кадра.
	ErrNotStarted = errors.New("camera is not started")
	// ErrNotReady кадр недостаточно резкий или яркий.
	ErrNotReady = errors.New("frame is not sharp or bright enough")
	// ErrNothingCaptured нечего отправлять.
	ErrNothingCaptured = errors.New("nothing captured")
	// ErrUploadInProgress отправка уже идёт.
	ErrUploadInProgress = errors.New("upload already in progress")
	// ErrNotConfigured не задан нужный компонент.
	ErrNotConfigured = errors.New("component is not configured")
)

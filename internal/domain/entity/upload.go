package entity

import "time"

// UploadResult итог одной отправки снимка.
type UploadResult struct {
	ID         string `json:"id"`          // идентификатор запроса
	StatusCode int    `json:"status_code"` // HTTP-статус ответа
	Success    bool   `json:"success"`     // true для 2xx
	Message    string `json:"message"`     // текст для пользователя
}

// CaptureRecord запись истории отправок.
type CaptureRecord struct {
	ID         string       `json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	Metrics    FrameMetrics `json:"metrics"`
	Bytes      int          `json:"bytes"`
	StatusCode int          `json:"status_code"`
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
}

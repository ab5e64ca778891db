package entity

// SessionState состояние экрана съёмки
type SessionState string

const (
	SessionIdle       SessionState = "idle"       // Камера не запущена
	SessionPreviewing SessionState = "previewing" // Идёт превью и оценка кадров
	SessionCaptured   SessionState = "captured"   // Снимок сделан, ждёт отправки
	SessionUploading  SessionState = "uploading"  // Снимок отправляется
)

// Session временное состояние одного экрана съёмки.
// Ничего из этого не переживает перезапуск.
type Session struct {
	State       SessionState
	Metrics     FrameMetrics
	Readiness   Readiness
	Captured    []byte // JPEG снимка, nil если снимка нет
	Uploading   bool
	LastMessage string // последний результат отправки
	LastError   string // последняя ошибка камеры
}

// NewSession создаёт сессию в начальном состоянии.
func NewSession() *Session {
	return &Session{State: SessionIdle}
}

// HasCapture сообщает, есть ли сделанный снимок.
func (s *Session) HasCapture() bool {
	return len(s.Captured) > 0
}

// Clone возвращает копию сессии для читателей.
func (s *Session) Clone() Session {
	c := *s
	if s.Captured != nil {
		c.Captured = append([]byte(nil), s.Captured...)
	}
	return c
}

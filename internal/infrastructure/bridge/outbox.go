package bridge

import (
	"sync"

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

// DefaultOutboxSize сколько сообщений ждут, пока хост их не заберёт.
const DefaultOutboxSize = 64

// Outbox ограниченная очередь сообщений хосту. При переполнении
// выбрасывается самое старое сообщение.
type Outbox struct {
	mu   sync.Mutex
	size int
	msgs []entity.BridgeMessage
}

// NewOutbox создаёт очередь на size сообщений.
func NewOutbox(size int) *Outbox {
	if size <= 0 {
		size = DefaultOutboxSize
	}
	return &Outbox{size: size}
}

// Post ставит сообщение в очередь.
func (o *Outbox) Post(msg entity.BridgeMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.msgs) == o.size {
		o.msgs = o.msgs[1:]
	}
	o.msgs = append(o.msgs, msg)
}

// Drain забирает все сообщения.
func (o *Outbox) Drain() []entity.BridgeMessage {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := o.msgs
	o.msgs = nil
	return out
}

// Len число сообщений в очереди.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.msgs)
}

// Проверка реализации интерфейса
var _ port.HostBridge = (*Outbox)(nil)

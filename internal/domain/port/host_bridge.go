package port

import "focus-cam/internal/domain/entity"

// HostBridge очередь сообщений для хост-контейнера
type HostBridge interface {
	// Post ставит сообщение в очередь хосту
	Post(msg entity.BridgeMessage)

	// Drain забирает все накопленные сообщения
	Drain() []entity.BridgeMessage
}

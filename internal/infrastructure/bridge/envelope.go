package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"focus-cam/internal/domain/entity"
)

// ErrEmptyType сообщение без типа.
var ErrEmptyType = errors.New("bridge message has no type")

// Decode разбирает сообщение хоста.
func Decode(data []byte) (entity.BridgeMessage, error) {
	var msg entity.BridgeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode bridge message: %w", err)
	}
	if msg.Type == "" {
		return msg, ErrEmptyType
	}
	return msg, nil
}

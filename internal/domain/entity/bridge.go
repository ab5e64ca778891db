package entity

import (
	"encoding/json"
	"fmt"
)

// Типы сообщений моста с хост-контейнером.
const (
	MsgPing     = "ping"
	MsgPong     = "pong"
	MsgStatus   = "status"
	MsgCapture  = "capture"
	MsgRetake   = "retake"
	MsgRedirect = "redirect"
	MsgNavigate = "navigate"
	MsgResult   = "result"
	MsgError    = "error"
)

// BridgeMessage сообщение между экраном и хост-контейнером.
// ReplyTo связывает ответ с запросом.
type BridgeMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	ReplyTo string          `json:"reply_to,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewBridgeMessage собирает сообщение с полезной нагрузкой payload.
func NewBridgeMessage(typ, replyTo string, payload any) (BridgeMessage, error) {
	msg := BridgeMessage{Type: typ, ReplyTo: replyTo}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return msg, fmt.Errorf("encode %s payload: %w", typ, err)
	}
	msg.Payload = raw
	return msg, nil
}

// BridgeError ответ об ошибке на сообщение replyTo.
func BridgeError(replyTo string, err error) BridgeMessage {
	msg, _ := NewBridgeMessage(MsgError, replyTo, map[string]string{"error": err.Error()})
	return msg
}

package relay

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/SutharYagnesh/EduPath/internal/infrastructure/realtime"
	chat "github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/domain"
)

// MessageRelay adapts the realtime bridge to the shape the send-message use
// case publishes through. It owns the wire format of the receive_message
// event so the use case stays transport-agnostic.
type MessageRelay struct {
	Bridge *realtime.Bridge
	Log    *zap.Logger
}

func NewMessageRelay(bridge *realtime.Bridge, logger *zap.Logger) *MessageRelay {
	return &MessageRelay{Bridge: bridge, Log: logger}
}

type receiveMessageEvent struct {
	Type      string    `json:"type"`
	ChatID    string    `json:"chatId"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Publish broadcasts a persisted message to the chat's room.
func (r *MessageRelay) Publish(ctx context.Context, chatID string, m chat.Message) {
	payload, err := json.Marshal(receiveMessageEvent{
		Type:      "receive_message",
		ChatID:    chatID,
		Message:   m.Text,
		Sender:    string(m.Sender),
		Timestamp: m.Timestamp,
	})
	if err != nil {
		r.Log.Error("relay: encode receive_message", zap.Error(err))
		return
	}
	r.Bridge.Publish(ctx, chatID, payload)
}

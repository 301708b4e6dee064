package realtime

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultChannel = "chat.events"

// Bridge fans broadcasts out across server nodes through a redis pub/sub
// channel. Every node subscribes to the channel and delivers received events
// to its local Router, so a publish reaches room members regardless of which
// node their socket landed on.
//
// With a nil redis client the bridge degrades to local-only delivery, which
// is what tests and single-node development use.
type Bridge struct {
	router  *Router
	rdb     *redis.Client
	channel string
	log     *zap.Logger
}

type wireEvent struct {
	ChatID  string          `json:"chat_id"`
	Payload json.RawMessage `json:"payload"`
}

// NewBridge wires a Router to an optional redis client.
func NewBridge(router *Router, rdb *redis.Client, logger *zap.Logger) *Bridge {
	return &Bridge{router: router, rdb: rdb, channel: defaultChannel, log: logger}
}

// Publish delivers payload to all members of the chat room. When redis is
// configured the event goes through the channel and comes back to every node
// (this one included) exactly once; otherwise it is broadcast locally.
func (b *Bridge) Publish(ctx context.Context, chatID string, payload []byte) {
	if b.rdb == nil {
		b.router.Broadcast(chatID, payload)
		return
	}

	data, err := json.Marshal(wireEvent{ChatID: chatID, Payload: payload})
	if err != nil {
		b.log.Error("bridge: encode event", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		// Fall back to local delivery so subscribers on this node still see
		// the message even when redis is down.
		b.log.Warn("bridge: publish failed, delivering locally", zap.Error(err))
		b.router.Broadcast(chatID, payload)
	}
}

// Run subscribes to the channel and routes incoming events to the local
// router until the context is canceled. It is a no-op without redis.
func (b *Bridge) Run(ctx context.Context) error {
	if b.rdb == nil {
		return nil
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var evt wireEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				b.log.Warn("bridge: malformed event", zap.Error(err))
				continue
			}
			b.router.Broadcast(evt.ChatID, evt.Payload)
		}
	}
}

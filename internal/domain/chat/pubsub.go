package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	chatChannel = "chat:events"
	publishTTL  = 5 * time.Second
)

// Bridge fans chat events out across instances through Redis
// pub/sub. Single-instance deployments can run without one: a nil
// *Bridge is safe to publish to.
type Bridge struct {
	client *redis.Client
	logger *zap.Logger
}

func NewBridge(client *redis.Client, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{client: client, logger: logger}
}

type bridgePayload struct {
	Event WSEvent `json:"event"`
	At    int64   `json:"at"`
}

// Publish pushes an event to the shared channel. Failures are logged
// and swallowed: local delivery has already happened.
func (b *Bridge) Publish(event *WSEvent) {
	if b == nil {
		return
	}
	body, err := json.Marshal(bridgePayload{Event: *event, At: time.Now().Unix()})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTTL)
	defer cancel()
	if err := b.client.Publish(ctx, chatChannel, body).Err(); err != nil {
		b.logger.Warn("chat event publish failed", zap.Error(err))
	}
}

// Subscribe relays events from the shared channel into the local hub
// until ctx is cancelled.
func (b *Bridge) Subscribe(ctx context.Context, hub *Hub) error {
	if b == nil {
		return nil
	}
	pubsub := b.client.Subscribe(ctx, chatChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var p bridgePayload
				if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
					continue
				}
				hub.BroadcastToConversation(p.Event.ConversationID, &p.Event)
			}
		}
	}()
	return nil
}

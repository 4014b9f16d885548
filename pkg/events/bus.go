package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const Topic = "applydi.events"

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Envelope is the decoded form handed to subscribers.
type Envelope struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e Envelope) String(key string) string {
	if v, ok := e.Payload[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// Bus delivers events in-process. Publish blocks until every subscriber
// has handled the event, so notifications surface in the order operations
// complete. Handlers must not publish.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{BlockPublishUntilSubscriberAck: true},
			watermill.NopLogger{},
		),
	}
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	raw, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	msg.Metadata.Set("event_type", event.EventType())
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

// Subscribe runs handler for every event until ctx ends or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, handler func(Envelope)) error {
	messages, err := b.pubSub.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var env Envelope
			if err := json.Unmarshal(msg.Payload, &env); err == nil {
				env.Id = msg.UUID
				handler(env)
			}
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}

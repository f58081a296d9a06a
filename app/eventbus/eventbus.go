package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Emitter publishes domain events. Delivery is best-effort: a failed publish
// is logged and never fails the operation that produced the event.
type Emitter interface {
	Emit(ctx context.Context, topic string, payload any)
}

// Bus adapts a watermill publisher to Emitter.
type Bus struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// New wraps publisher.
func New(publisher message.Publisher, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{publisher: publisher, logger: logger}
}

// NewPublisher connects to NATS when natsURL is set and otherwise returns an
// in-process channel publisher.
func NewPublisher(natsURL string, logger *slog.Logger) (message.Publisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	if natsURL == "" {
		logger.Info("NATS_URL not set, publishing domain events in-process")
		return gochannel.NewGoChannel(gochannel.Config{}, wmLogger), nil
	}
	pub, err := NewNatsPublisher(natsURL, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}
	return pub, nil
}

// Emit marshals payload as JSON and publishes it on topic.
func (b *Bus) Emit(ctx context.Context, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to marshal event payload",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataEventType, topic)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		b.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
		return
	}
	b.logger.DebugContext(ctx, "Event published",
		slog.String("topic", topic),
		slog.String("message_id", msg.UUID),
	)
}

// Close closes the underlying publisher.
func (b *Bus) Close() error {
	return b.publisher.Close()
}

// Nop discards events.
type Nop struct{}

func (Nop) Emit(context.Context, string, any) {}

var (
	_ Emitter = (*Bus)(nil)
	_ Emitter = Nop{}
)

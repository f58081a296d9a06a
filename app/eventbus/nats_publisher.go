package eventbus

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// NatsPublisher implements the Watermill Publisher interface over core NATS.
type NatsPublisher struct {
	conn   *nc.Conn
	logger watermill.LoggerAdapter
}

// NewNatsPublisher connects to natsURL with unlimited reconnects.
func NewNatsPublisher(natsURL string, logger watermill.LoggerAdapter, opts ...nc.Option) (*NatsPublisher, error) {
	logger.Info("Connecting to NATS for publisher", watermill.LogFields{"url": natsURL})

	options := []nc.Option{
		nc.Name("clubhouse"),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
	}
	options = append(options, opts...)

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		logger.Error("Failed to connect to NATS", err, nil)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Connected to NATS for publisher", nil)

	return &NatsPublisher{conn: conn, logger: logger}, nil
}

// Publish implements the message.Publisher interface. Metadata travels as
// NATS headers.
func (p *NatsPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		out := nc.NewMsg(topic)
		out.Data = msg.Payload
		out.Header.Set(HeaderMessageID, msg.UUID)
		for k, v := range msg.Metadata {
			out.Header.Set(k, v)
		}

		p.logger.Trace("Publishing message", watermill.LogFields{"topic": topic, "uuid": msg.UUID})
		if err := p.conn.PublishMsg(out); err != nil {
			return fmt.Errorf("failed to publish message to NATS: %w", err)
		}
	}
	return nil
}

// Close drains and closes the connection.
func (p *NatsPublisher) Close() error {
	p.logger.Info("Closing NATS publisher connection", nil)
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}

var _ message.Publisher = (*NatsPublisher)(nil)

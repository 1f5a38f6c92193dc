package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events from a topic as part of a consumer group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume delivers decoded booking events to handler until the context is
// cancelled or handler fails. A payload that does not decode as a
// BookingEvent is logged and skipped rather than stalling the group.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("WARNING: dropping undecodable event at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

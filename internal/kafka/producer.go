package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trogers1052/trade-journal-service/internal/models"
)

// Producer handles publishing journal events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishTradeRecorded publishes an event for a newly journaled trade
func (p *Producer) PublishTradeRecorded(ctx context.Context, entry *models.TradeEntry) error {
	event := models.TradeEvent{
		EventType: models.EventTradeRecorded,
		TradeID:   entry.ID,
		Symbol:    entry.Symbol,
		Direction: entry.Direction,
		Pnl:       entry.Pnl,
		Timestamp: time.Now().UTC(),
	}
	return p.publish(ctx, entry.Symbol, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.TradeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close shuts down the underlying writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

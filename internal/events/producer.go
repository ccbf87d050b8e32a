package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"gallery-shop/internal/logger"
)

// Producer publishes domain events to Kafka. The writer carries no default
// topic; each message names its own.
type Producer struct {
	Writer *kafka.Writer
	Log    *logger.Logger
}

func NewProducer(brokers []string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, Log: log}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	err := p.Writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.Log.Info("KAFKA", fmt.Sprintf("Published event to %s (key=%s)", topic, key))
	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

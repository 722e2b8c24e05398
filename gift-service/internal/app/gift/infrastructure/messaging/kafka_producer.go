package messaging

import (
	"context"
	"fmt"
	"time"

	"giftshop/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "gift-service"

type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает producer. Короткий BatchTimeout, чтобы запрос не ждал заполнения батча
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет одно сообщение. Ключ задает партицию, события одного товара идут по порядку
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  start,
	}

	err := p.writer.WriteMessages(ctx, message)
	metrics.ObserveKafkaProduce(serviceName, p.topic, start, err)
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда брокеры не настроены
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishMessage(context.Context, string, []byte) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

package kafka

import (
	"Planting/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher 发布论坛事件
type Publisher interface {
	Publish(ctx context.Context, event *ForumEvent) error
	Close() error
}

type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher 未启用 Kafka 时返回空实现
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enable {
		log.Info("Kafka disabled, forum events will not be published")
		return NopPublisher{}, nil
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewSaramaPublisher(producer, cfg.Topic), nil
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func (s *SaramaPublisher) Publish(ctx context.Context, event *ForumEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.BoardID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s event failed: %w", event.Type, err)
	}

	log.InfoContext(ctx, "Forum event published",
		"type", event.Type,
		"topic", s.topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (s *SaramaPublisher) Close() error {
	return s.producer.Close()
}

// NopPublisher 丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *ForumEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

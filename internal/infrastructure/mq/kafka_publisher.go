package mq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mindful_server/internal/config"
	"mindful_server/internal/infrastructure/metrics"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes events to the configured topic keyed by aggregate id,
// so events of one aggregate keep their order within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg *config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.HostPort),
			Topic:                  cfg.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           time.Duration(cfg.Timeout) * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	})
	metrics.RecordEvent(ev.Type, err)
	return err
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// CreateTopic creates the event topic if the broker does not have it yet.
func CreateTopic(cfg *config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", cfg.HostPort)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.EventTopic,
		NumPartitions:     max(cfg.Partition, 1),
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}
	return nil
}

// Consume reads events from the topic in group groupID and passes them to
// handler until ctx is cancelled.
func Consume(ctx context.Context, cfg *config.KafkaConfig, groupID string, handler Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.HostPort},
		Topic:          cfg.EventTopic,
		GroupID:        groupID,
		CommitInterval: time.Duration(cfg.Timeout) * time.Second,
		StartOffset:    kafka.LastOffset,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.L().Warn("skip undecodable event", zap.Int64("offset", msg.Offset), zap.Error(err))
			continue
		}
		handler(ctx, ev)
	}
}

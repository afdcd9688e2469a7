package mq

import (
	"context"
	"fmt"

	"mindful_server/internal/config"
	"mindful_server/pkg/constants"

	"go.uber.org/zap"
)

// NewPublisher selects the publisher for cfg.MessageMode.
func NewPublisher(cfg *config.KafkaConfig) (Publisher, error) {
	switch cfg.MessageMode {
	case "channel", "":
		return NewChannelPublisher(constants.CHANNEL_SIZE, LogHandler), nil
	case "kafka":
		if err := CreateTopic(cfg); err != nil {
			// the broker may forbid topic creation; the writer still works if the topic exists
			zap.L().Warn("create kafka topic", zap.String("topic", cfg.EventTopic), zap.Error(err))
		}
		return NewKafkaPublisher(cfg), nil
	default:
		return nil, fmt.Errorf("unknown message mode %q", cfg.MessageMode)
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error { return nil }

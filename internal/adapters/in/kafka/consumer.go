// Package kafka consumes the delivery platform's event topic and feeds agent and order intake.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"backoffice/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// HandleFunc processes a single decoded Event.
type HandleFunc func(context.Context, Event) error

var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a sarama consumer group and dispatches events to a handler.
type Consumer struct {
	logger  *slog.Logger
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	backoff time.Duration
}

// NewConsumer creates a consumer for topic. It returns nil, nil when brokers, group or topic is
// not configured, and Run and Close accept a nil Consumer.
func NewConsumer(logger *slog.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = false

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		logger:  logger.With("component", "kafka-consumer", "topic", topic),
		group:   group,
		topic:   topic,
		handler: h,
		backoff: time.Second,
	}, nil
}

// Run consumes until ctx is cancelled. Rebalances and consume errors restart the session.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

// permanent reports whether redelivering the message could never succeed.
func permanent(err error) bool {
	if errors.Is(err, ErrMalformedEvent) || errors.Is(err, ErrUnknownEventType) {
		return true
	}
	switch errs.KindOf(err) {
	case errs.KindTransientFailure, errs.KindInternal:
		return false
	}
	return true
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks a message once it is handled or known to be unprocessable. Any other
// failure ends the claim without marking, so the message is delivered again.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	logger := h.c.logger
	for msg := range claim.Messages() {
		var ev Event
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logger.Warn("kafka bad json", slog.Int64("offset", msg.Offset), slog.Any("error", err))
			sess.MarkMessage(msg, "")
			continue
		}

		err := h.c.handler(sess.Context(), ev)
		switch {
		case err == nil:
		case permanent(err):
			logger.Warn("kafka event rejected",
				slog.String("type", ev.Type), slog.Int64("offset", msg.Offset), slog.Any("error", err))
		default:
			logger.Error("kafka handle failed, retry",
				slog.String("type", ev.Type), slog.Int64("offset", msg.Offset), slog.Any("error", err))
			return err
		}

		sess.MarkMessage(msg, "")
	}
	return nil
}

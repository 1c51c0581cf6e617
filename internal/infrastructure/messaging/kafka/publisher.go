// Package kafka publishes domain events to Kafka with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/errors"
	"github.com/turtacn/MissionIntelligence/pkg/types/events"
)

var (
	ErrPublisherClosed = errors.New(errors.ErrCodePublishFailed, "publisher closed")
	ErrPublishFailed   = errors.New(errors.ErrCodePublishFailed, "publish failed")
)

// maxMessageBytes bounds a single event payload.
const maxMessageBytes = 1 << 20

// WriterInterface abstracts kafka.Writer for tests.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherMetrics are cumulative counters.
type PublisherMetrics struct {
	Sent   int64
	Failed int64
	Bytes  int64
}

// Publisher writes events as JSON to a single topic.
type Publisher struct {
	writer WriterInterface
	topic  string
	logger logging.Logger
	closed atomic.Bool

	sent   atomic.Int64
	failed atomic.Int64
	bytes  atomic.Int64
}

// NewPublisher builds a kafka.Writer from cfg. The writer connects lazily, so
// construction succeeds even when the brokers are down.
func NewPublisher(cfg config.KafkaConfig, logger logging.Logger) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.CodeValidation, "kafka brokers required")
	}
	if cfg.Topic == "" {
		return nil, errors.New(errors.CodeValidation, "kafka topic required")
	}

	acks := kafka.RequireOne
	switch cfg.RequiredAcks {
	case -1:
		acks = kafka.RequireAll
	case 0:
		acks = kafka.RequireNone
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: acks,
		Async:        cfg.Async,
		WriteTimeout: 10 * time.Second,
		Transport:    &kafka.Transport{DialTimeout: 5 * time.Second},
	}
	return NewPublisherWithWriter(writer, cfg.Topic, logger), nil
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(w WriterInterface, topic string, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Publisher{writer: w, topic: topic, logger: logger.Named("kafka")}
}

// Publish writes e. The message key is the event key, falling back to the
// event id.
func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	if e.Type == "" {
		return errors.New(errors.CodeValidation, "event type required")
	}

	value, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "marshal event")
	}
	if len(value) > maxMessageBytes {
		return errors.New(errors.CodeValidation, "event too large")
	}

	key := e.Key
	if key == "" {
		key = e.ID
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.failed.Add(1)
		return ErrPublishFailed.WithCause(err).WithDetail(e.Type)
	}
	p.sent.Add(1)
	p.bytes.Add(int64(len(value)))
	p.logger.Debug("event published", logging.String("type", e.Type), logging.String("topic", p.topic))
	return nil
}

// Metrics returns a snapshot of the counters.
func (p *Publisher) Metrics() PublisherMetrics {
	return PublisherMetrics{Sent: p.sent.Load(), Failed: p.failed.Load(), Bytes: p.bytes.Load()}
}

// Close flushes and closes the writer. It is idempotent.
func (p *Publisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("kafka publisher closed", logging.Int64("sent", p.sent.Load()), logging.Int64("failed", p.failed.Load()))
	return err
}

//Personal.AI order the ending

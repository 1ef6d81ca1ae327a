// Package events publishes one record per dispatched query to Kafka. The
// emitter is optional: a nil *Emitter swallows everything, so callers never
// branch on whether a broker is configured.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTopic = "dexscout_queries"

	writeTimeout = 5 * time.Second
)

// Query is the record written per dispatched message.
type Query struct {
	MessageID  string `json:"message_id"`
	Action     string `json:"action,omitempty"`
	Matched    bool   `json:"matched"`
	DurationMS int64  `json:"duration_ms"`
	ReplyChars int    `json:"reply_chars"`
}

// Emitter writes query records to one Kafka topic.
type Emitter struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

// New builds an emitter for broker/topic. An empty broker returns nil,
// which is a valid no-op emitter.
func New(broker, topic string, logger *logrus.Logger) *Emitter {
	if broker == "" {
		return nil
	}
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Compression:  kafka.Snappy,
	}
	return &Emitter{writer: writer, logger: logger}
}

// Record writes one query record. Failures are logged and swallowed: event
// delivery must never affect the reply path.
func (e *Emitter) Record(ctx context.Context, q Query) {
	if e == nil {
		return
	}

	data, err := json.Marshal(q)
	if err != nil {
		e.logger.Errorf("events: marshal failed: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := e.writer.WriteMessages(writeCtx, kafka.Message{Value: data}); err != nil && ctx.Err() == nil {
		e.logger.Errorf("events: kafka write failed: %v", err)
	}
}

// Close flushes and closes the underlying writer.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	return e.writer.Close()
}

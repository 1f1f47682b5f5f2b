// Package eventpublisher publishes committed ledger events.
package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/metrics"
)

// Kafka publishes events to a Kafka topic, keyed by account so that the
// events of one account keep their order within a partition.
//
// Writes are asynchronous: Publish only enqueues the message and delivery
// failures are logged and counted when the batch completes.
type Kafka struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafka creates a publisher writing to topic on brokers.
func NewKafka(brokers []string, topic string, logger zerolog.Logger) *Kafka {
	k := &Kafka{logger: logger}

	k.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   k.complete,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}

	return k
}

// complete is called by the writer once a batch is delivered or given up on.
func (k *Kafka) complete(messages []kafka.Message, err error) {
	if err == nil {
		return
	}

	metrics.AncillaryFailures.WithLabelValues("event").Add(float64(len(messages)))

	for _, m := range messages {
		k.logger.Error().Err(err).Str("account", string(m.Key)).Msg("cannot deliver ledger event")
	}
}

// Encode turns a ledger event into a Kafka message.
func Encode(e domain.LedgerEvent) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(e.Account),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

// Publish enqueues one event. It does not wait for the brokers.
func (k *Kafka) Publish(ctx context.Context, e domain.LedgerEvent) error {
	msg, err := Encode(e)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the writer.
func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, domain.LedgerEvent) error {
	return nil
}

// Close does nothing.
func (Nop) Close() error {
	return nil
}

package output

import (
	"context"
	"fmt"

	kafka "github.com/segmentio/kafka-go"

	"aptos-etl/core"
)

// KafkaSink publishes to a partitioned-log broker, one topic per family
// under a shared {address}:{port}, per spec §4.9's "APACHE_KAFKA" feature.
// Writes are zero-linger (no client-side batching delay, matching the
// original's BatchProducerBuilder::with_linger(Duration::ZERO)) and retried
// with linear backoff on failure.
type KafkaSink struct {
	writers map[string]*kafka.Writer
	address string
}

// NewKafkaSink dials no connections eagerly; writers are created lazily per
// family/topic on first publish.
func NewKafkaSink(address, port string) *KafkaSink {
	return &KafkaSink{
		writers: map[string]*kafka.Writer{},
		address: fmt.Sprintf("%s:%s", address, port),
	}
}

func (s *KafkaSink) writerFor(topic string) *kafka.Writer {
	if w, ok := s.writers[topic]; ok {
		return w
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(s.address),
		Topic:        topic,
		BatchTimeout: 0,
		Async:        false,
	}
	s.writers[topic] = w
	return w
}

func (s *KafkaSink) Publish(family string, record any) error {
	return s.PublishBatch(family, []any{record}, nil)
}

func (s *KafkaSink) PublishBatch(family string, records []any, _ []core.UnixTimestamp) error {
	if len(records) == 0 {
		return nil
	}
	encoded, err := marshalAll(records)
	if err != nil {
		return err
	}
	msgs := make([]kafka.Message, len(encoded))
	for i, body := range encoded {
		msgs[i] = kafka.Message{Value: body}
	}

	writer := s.writerFor(family)
	return publishWithLinearBackoff(func() error {
		return writer.WriteMessages(context.Background(), msgs...)
	}, 10)
}

func (s *KafkaSink) Close() error {
	var firstErr error
	for _, w := range s.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package output

import (
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"aptos-etl/core"
)

// RabbitMQSink publishes to a classic queue per family, per spec §4.9's
// "RABBITMQ_CLASSIC" feature. Per spec §5 "shared resources", an
// amqp.Channel is not thread-affine-shared across concurrent callers: each
// publish checks out the sink's single channel under a mutex, matching the
// original Rust "not thread-safe; needs to be constructed within the thread
// that is using it" comment on StreamPublisherConnection.channel.
type RabbitMQSink struct {
	conn *amqp.Connection

	mu      sync.Mutex
	channel *amqp.Channel
}

// NewRabbitMQSink dials a classic AMQP connection.
func NewRabbitMQSink(address, port, user, password string) (*RabbitMQSink, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, password, address, port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("output: rabbitmq dial: %w", err)
	}
	return &RabbitMQSink{conn: conn}, nil
}

// withChannel runs fn with the sink's single lazily-opened channel held
// exclusively, matching the "not shared across concurrent workers"
// constraint.
func (s *RabbitMQSink) withChannel(fn func(*amqp.Channel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.channel == nil {
		ch, err := s.conn.Channel()
		if err != nil {
			return fmt.Errorf("output: rabbitmq channel: %w", err)
		}
		s.channel = ch
	}
	return fn(s.channel)
}

func (s *RabbitMQSink) Publish(family string, record any) error {
	return s.PublishBatch(family, []any{record}, nil)
}

func (s *RabbitMQSink) PublishBatch(family string, records []any, _ []core.UnixTimestamp) error {
	if len(records) == 0 {
		return nil
	}
	encoded, err := marshalAll(records)
	if err != nil {
		return err
	}
	return s.withChannel(func(ch *amqp.Channel) error {
		if _, err := ch.QueueDeclare(family, true, false, false, false, nil); err != nil {
			return fmt.Errorf("output: rabbitmq declare %s: %w", family, err)
		}
		for _, body := range encoded {
			body := body
			err := publishWithLinearBackoff(func() error {
				return ch.Publish("", family, false, false, amqp.Publishing{
					ContentType: "application/json",
					Body:        body,
				})
			}, 10)
			if err != nil {
				return fmt.Errorf("output: rabbitmq publish %s: %w", family, err)
			}
		}
		return nil
	})
}

func (s *RabbitMQSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.channel != nil {
		_ = s.channel.Close()
	}
	return s.conn.Close()
}

package events

import (
	"chat-router/domain"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPSink publishes lifecycle events on a durable topic exchange,
// routed by "router.<kind>" (router.chat.miss, router.chat.transfer...).
type AMQPSink struct {
	conn     *amqp091.Connection
	exchange string
	log      *slog.Logger
}

func NewAMQPSink(url, exchange string, log *slog.Logger) (*AMQPSink, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPSink{conn: conn, exchange: exchange, log: log}, nil
}

func (s *AMQPSink) Consume(ctx context.Context, e domain.LifecycleEvent) error {
	ch, err := s.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	envelope := NewEnvelope(e)
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	correlation := ""
	if envelope.Meta.CorrelationID != nil {
		correlation = *envelope.Meta.CorrelationID
	}
	err = ch.PublishWithContext(ctx, s.exchange, e.RoutingKey(), false, false, amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		MessageId:     envelope.Meta.ID,
		CorrelationId: correlation,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.RoutingKey(), err)
	}
	s.log.Debug("published", slog.String("key", e.RoutingKey()), slog.String("exchange", s.exchange))
	return nil
}

func (s *AMQPSink) Close() error {
	return s.conn.Close()
}

package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"amendement_fetcher/internal/domain"
)

// RabbitMQ publishes domain events and data alerts on a direct exchange,
// each on its own routing key.
type RabbitMQ struct {
	conn            *amqp.Connection
	channel         *amqp.Channel
	exchange        string
	eventRoutingKey string
	alertRoutingKey string
	logger          *slog.Logger
}

type Config struct {
	URL             string
	Exchange        string
	EventRoutingKey string
	AlertRoutingKey string
	EventQueueName  string
	AlertQueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	for _, binding := range []struct{ queue, key string }{
		{cfg.EventQueueName, cfg.EventRoutingKey},
		{cfg.AlertQueueName, cfg.AlertRoutingKey},
	} {
		q, err := ch.QueueDeclare(
			binding.queue,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare queue %s: %w", binding.queue, err)
		}
		if err := ch.QueueBind(q.Name, binding.key, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue %s: %w", binding.queue, err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"event_queue", cfg.EventQueueName,
		"alert_queue", cfg.AlertQueueName,
	)

	return &RabbitMQ{
		conn:            conn,
		channel:         ch,
		exchange:        cfg.Exchange,
		eventRoutingKey: cfg.EventRoutingKey,
		alertRoutingKey: cfg.AlertRoutingKey,
		logger:          logger,
	}, nil
}

type EventMessage struct {
	Event     domain.Event `json:"event"`
	Timestamp time.Time    `json:"timestamp"`
}

// Alert is a data-quality notification for operators, sent at most once per
// lecture until its alert flag is reset.
type Alert struct {
	Kind      string    `json:"kind"`
	Code      int       `json:"code"`
	URL       string    `json:"url"`
	Titre     string    `json:"titre"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Record publishes a domain event; implements the event sink used by the
// fetch pipeline.
func (r *RabbitMQ) Record(ctx context.Context, event domain.Event) error {
	msg := EventMessage{Event: event, Timestamp: time.Now().UTC()}
	if err := r.publish(ctx, r.eventRoutingKey, msg); err != nil {
		return err
	}
	r.logger.Debug("published event",
		"kind", event.Kind,
		"lecture_pk", event.LecturePK,
	)
	return nil
}

func (r *RabbitMQ) PublishAlert(ctx context.Context, alert Alert) error {
	alert.Timestamp = time.Now().UTC()
	if err := r.publish(ctx, r.alertRoutingKey, alert); err != nil {
		return err
	}
	r.logger.Debug("published alert", "kind", alert.Kind, "code", alert.Code)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

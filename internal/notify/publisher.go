// Package notify publishes timer events to the message broker so external
// collaborators (desktop notifiers, bots) can react. Publishing is optional
// enrichment: failures are logged and swallowed, never surfaced to the
// timer path.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

const (
	ExchangeName = "planner.events"

	RoutingKeyTimerCompleted = "timer.completed"
	RoutingKeySnoozeElapsed  = "timer.snooze.elapsed"
)

// TimerEventPayload is the JSON body of both timer event kinds.
type TimerEventPayload struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	ElapsedSec int64     `json:"elapsed_seconds"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher owns one AMQP connection and channel bound to the planner topic
// exchange.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, logger: logger}, nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// IsConnected reports whether the underlying connection is still alive.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.channel != nil && !p.conn.IsClosed()
}

// TimerCompleted announces that a running countdown reached its target.
func (p *Publisher) TimerCompleted(task model.Task) {
	p.publish(RoutingKeyTimerCompleted, task)
}

// SnoozeElapsed announces that a snooze window ran out.
func (p *Publisher) SnoozeElapsed(task model.Task) {
	p.publish(RoutingKeySnoozeElapsed, task)
}

func (p *Publisher) publish(routingKey string, task model.Task) {
	payload := TimerEventPayload{
		TaskID:     task.ID,
		Title:      task.Title,
		Category:   task.Category,
		ElapsedSec: task.TimeSpent,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("Failed to marshal timer event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}

	err = p.channel.Publish(
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
	if err != nil {
		p.logger.Warn("Failed to publish timer event",
			zap.String("routing_key", routingKey),
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("Timer event published",
		zap.String("routing_key", routingKey),
		zap.String("task_id", task.ID),
	)
}

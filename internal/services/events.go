package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

type Action string

const (
	ActionExtract   Action = "extract"
	ActionScore     Action = "score"
	ActionFeedback  Action = "feedback"
	ActionPortfolio Action = "portfolio"
	ActionExport    Action = "export"
)

type ActionStatus string

const (
	StatusIdle       ActionStatus = "idle"
	StatusExtracting ActionStatus = "extracting"
	StatusAnalyzing  ActionStatus = "analyzing"
	StatusFeedback   ActionStatus = "generating_feedback"
	StatusGenerating ActionStatus = "generating"
	StatusExporting  ActionStatus = "exporting"
	StatusFailed     ActionStatus = "failed"
)

// lockScope is the busy flag an action takes. Feedback reads the score it
// explains, so both share one flag.
func lockScope(action Action) Action {
	if action == ActionFeedback {
		return ActionScore
	}
	return action
}

// busyStatus is what a session reports while action runs.
func busyStatus(action Action) ActionStatus {
	switch action {
	case ActionExtract:
		return StatusExtracting
	case ActionScore:
		return StatusAnalyzing
	case ActionFeedback:
		return StatusFeedback
	case ActionExport:
		return StatusExporting
	default:
		return StatusGenerating
	}
}

type ActionEvent struct {
	SessionID string       `json:"sessionId"`
	Action    Action       `json:"action"`
	Status    ActionStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event ActionEvent) error
	Close() error
}

type amqpPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

func NewAMQPPublisher(url, exchange string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Printf("✅ Publishing session events to exchange '%s'\n", exchange)
	return &amqpPublisher{conn: conn, exchange: exchange, ch: ch}, nil
}

func (p *amqpPublisher) Publish(_ context.Context, event ActionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.Publish(
		p.exchange,
		fmt.Sprintf("session.%s", event.SessionID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   event.Timestamp,
			Body:        body,
		},
	)
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		log.Printf("⚠️  Failed to close channel: %v\n", err)
	}
	return p.conn.Close()
}

type noopPublisher struct{}

func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, ActionEvent) error { return nil }
func (noopPublisher) Close() error                                 { return nil }

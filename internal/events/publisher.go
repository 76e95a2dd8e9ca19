package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

const interactionQueue = "gemstone_events"

// Interaction event types.
const (
	TypeGemstoneCreated = "gemstone.created"
	TypeGemstoneLiked   = "gemstone.liked"
	TypeGemstoneUnliked = "gemstone.unliked"
	TypeGemstoneSaved   = "gemstone.saved"
	TypeGemstoneUnsaved = "gemstone.unsaved"
	TypeGemstoneRated   = "gemstone.rated"
	TypeGemstoneViewed  = "gemstone.viewed"
)

// InteractionEvent describes one user action on a gemstone.
type InteractionEvent struct {
	Type       string    `json:"type"`
	GemstoneID uuid.UUID `json:"gemstone_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher pushes interaction events to RabbitMQ. A nil Publisher is valid
// and drops everything, so the service runs without a broker configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the event queue.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		interactionQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", interactionQueue, err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish sends an interaction event. Failures are logged and swallowed;
// event delivery never blocks a user action.
func (p *Publisher) Publish(event InteractionEvent) {
	if p == nil || p.channel == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal interaction event: %v", err)
		return
	}

	err = p.channel.Publish(
		"",               // default exchange
		interactionQueue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		log.Printf("publish interaction event: %v", err)
	}
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close rabbitmq: %v", errs)
	}
	return nil
}

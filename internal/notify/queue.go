package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spendtrack-backend/internal/models"

	"github.com/rabbitmq/amqp091-go"
)

// QueueMessage is the wire form of a notification on the AMQP queue. A
// separate consumer turns these into user-facing messages.
type QueueMessage struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// QueuePublisher pushes notifications onto a durable queue instead of sending
// them directly.
type QueuePublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   string
}

func NewQueuePublisher(url, queue string) (*QueuePublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	return &QueuePublisher{conn: conn, channel: channel, queue: queue}, nil
}

func (p *QueuePublisher) Notify(user *models.User, subject, body string) error {
	msg := QueueMessage{
		UserID:    user.ID,
		Email:     user.Email,
		Subject:   subject,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (p *QueuePublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

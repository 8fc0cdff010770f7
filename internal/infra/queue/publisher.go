package queue

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/encadra/encadra/internal/config"
)

// Event is the payload fanned out to the notifications queue whenever a
// notification row is written.
type Event struct {
	Type      string    `json:"type"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type amqpPublisher struct {
	conn  *amqp.Connection
	queue string
}

func NewPublisher(conn *amqp.Connection, cfg *config.Config) Publisher {
	return &amqpPublisher{conn: conn, queue: cfg.RabbitMQ.Queue}
}

func (p *amqpPublisher) Publish(ctx context.Context, ev Event) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

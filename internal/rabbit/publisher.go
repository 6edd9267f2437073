// publisher.go
package rabbit

import (
	"context"
	"encoding/json"

	"shipment-tracker/internal/service"

	"github.com/rabbitmq/amqp091-go"
)

const exchangeName = "shipment_events"

// Publisher pushes shipment events to a fanout exchange. Notification
// consumers (mail, webhooks) bind their own queues.
type Publisher struct {
	ch *amqp091.Channel
}

func NewPublisher(ch *amqp091.Channel) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchangeName,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, ev service.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx,
		exchangeName,
		"", // fanout ignores routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

package scheduler

import (
	"github.com/streadway/amqp"

	"github.com/Tado3/Star-Space/internal/lib/rabbitmq"
	"github.com/Tado3/Star-Space/internal/models"
)

// QueuePublisher publishes due notices to the notification exchange.
type QueuePublisher struct {
	ch *amqp.Channel
}

func NewQueuePublisher(ch *amqp.Channel) *QueuePublisher {
	return &QueuePublisher{ch: ch}
}

func (p *QueuePublisher) PublishDueNotice(notice models.DueNotice) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.NotificationsExchange, rabbitmq.DueRoutingKey, notice)
}

package rabbitmq

// QueueConfig binds a queue to a routing key on the notifications
// exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationsExchange is the direct exchange all notification
// traffic goes through.
const NotificationsExchange = "notifications"

// DueQueue is the queue carrying one message per subscriber whose
// payment is due within the notification window.
const DueQueue = "notification.due"

// DueRoutingKey routes due notices into DueQueue.
const DueRoutingKey = "due"

// GetNotificationQueues lists the queues the scheduler and sender agree
// on.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: DueQueue, RoutingKey: DueRoutingKey},
	}
}

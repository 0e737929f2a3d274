// Package sender assembles the notification sender: the queue consumer
// and the SMTP transport.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Tado3/Star-Space/internal/config"
	"github.com/Tado3/Star-Space/internal/lib/rabbitmq"
	"github.com/Tado3/Star-Space/internal/lib/smtp"
	senderservice "github.com/Tado3/Star-Space/internal/services/sender"
)

// App is the notification sender application.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New creates the sender application.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(transport, cfg.SMTPFrom, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes the due-notice queue until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.DueQueue, a.senderService.HandleMessage)
	if err != nil {
		a.logger.Error("failed to start due queue consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

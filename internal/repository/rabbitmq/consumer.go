package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Niku17/JobSift/internal/domain/usecase"
)

// AuditConsumer drains lifecycle events into the audit trail.
type AuditConsumer struct {
	channel     *amqp.Channel
	exchange    string
	routingKey  string
	queue       string
	Trail       *usecase.AuditTrail
	logger      *zap.Logger
	prefetchCnt int
}

func NewAuditConsumer(conn *amqp.Connection, exchange, routingKey, queue string, trail *usecase.AuditTrail, logger *zap.Logger) (*AuditConsumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	consumer := &AuditConsumer{
		channel:     ch,
		exchange:    exchange,
		routingKey:  routingKey,
		queue:       queue,
		Trail:       trail,
		logger:      logger,
		prefetchCnt: 1,
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(
		queue,
		routingKey,
		exchange,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	if err := ch.Qos(consumer.prefetchCnt, 0, false); err != nil {
		return nil, err
	}

	return consumer, nil
}

func (c *AuditConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("audit consumer shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Warn("rabbitmq channel closed")
				return nil
			}

			if err := c.Trail.Record(ctx, msg.Body); err != nil {
				c.logger.Error("record audit event", zap.Error(err))
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

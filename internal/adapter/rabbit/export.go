package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	"github.com/Temutjin2k/ride-analytics/pkg/rabbit"
)

const (
	AnalyticsExchange = "analytics_topic"

	KeyExportCompleted = "analytics.export.completed"
)

type ExportPublisher struct {
	client   *rabbit.RabbitMQ
	exchange string
	attempts int
	backoff  time.Duration

	l logger.Logger
}

// NewExportPublisher declares the analytics exchange and returns a publisher bound to it.
func NewExportPublisher(client *rabbit.RabbitMQ, log logger.Logger) (*ExportPublisher, error) {
	if err := client.DeclareExchange(AnalyticsExchange, amqp.ExchangeTopic); err != nil {
		return nil, err
	}

	return &ExportPublisher{
		client:   client,
		exchange: AnalyticsExchange,
		attempts: 5,
		backoff:  time.Second,
		l:        log,
	}, nil
}

// PublishExportCompleted sends the export summary to 'analytics_topic' with key 'analytics.export.completed'.
func (p *ExportPublisher) PublishExportCompleted(ctx context.Context, msg models.ExportCompletedMessage) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_export_completed")

	if err := p.client.EnsureConnection(ctx); err != nil {
		p.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	err = retry(ctx, p.attempts, p.backoff, func() error {
		err := p.client.Publish(ctx, p.exchange, KeyExportCompleted, amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: msg.RunID,
			MessageId:     msg.RunID,
			Body:          body,
			Timestamp:     time.Now(),
		})
		if err != nil && isRecoverableError(err) {
			if rcErr := p.client.EnsureConnection(ctx); rcErr != nil {
				p.l.Warn(ctx, "reconnect before retry failed", "error", rcErr.Error())
			}
		}
		if err != nil {
			return fmt.Errorf("failed to publish with context: %w", err)
		}
		return nil
	})
	metrics.RecordRabbitMQPublish(p.exchange, err)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	p.l.Debug(ctx, "published export event", "exchange", p.exchange, "key", KeyExportCompleted)
	return nil
}

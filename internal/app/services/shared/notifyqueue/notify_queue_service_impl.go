package notifyqueue

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
)

// MessageSentEvent is published once per successfully stored message so
// downstream consumers (notification senders) can react asynchronously.
type MessageSentEvent struct {
	CommunicationID string `json:"communication_id"`
	SenderRef       string `json:"sender_ref"`
	RecipientRef    string `json:"recipient_ref"`
	SentAt          string `json:"sent_at"`
}

type notifyQueueService struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

func NewNotifyQueueService(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (*notifyQueueService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	return &notifyQueueService{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *notifyQueueService) PublishMessageSent(ctx context.Context, communicationID, senderRef, recipientRef string) error {
	s.Log.Info("notifyQueueService.PublishMessageSent called",
		zap.String(constvars.LoggingCommunicationKey, communicationID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	event := MessageSentEvent{
		CommunicationID: communicationID,
		SenderRef:       senderRef,
		RecipientRef:    recipientRef,
		SentAt:          time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.ContentTypeJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	if err := s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message); err != nil {
		s.Log.Error("notifyQueueService.PublishMessageSent error publishing message",
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}

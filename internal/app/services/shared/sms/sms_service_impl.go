package sms

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/exceptions"
	"encoding/json"
	"sync"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type smsService struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

var (
	smsServiceInstance contracts.SmsPublisher
	onceSmsService     sync.Once
	smsServiceError    error
)

func NewSmsService(rabbitMQConnection *amqp091.Connection, logger *zap.Logger, queue string) (contracts.SmsPublisher, error) {
	onceSmsService.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			smsServiceError = err
			return
		}
		instance := &smsService{
			Channel: channel,
			Queue:   queue,
			Log:     logger,
		}
		smsServiceInstance = instance
	})
	return smsServiceInstance, smsServiceError
}

func (s *smsService) PublishOtpMessage(ctx context.Context, request *requests.OtpSmsMessage) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	s.Log.Info("smsService.PublishOtpMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := json.Marshal(request)
	if err != nil {
		s.Log.Error("smsService.PublishOtpMessage error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	s.Log.Info("smsService.PublishOtpMessage publishing message",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("smsService.PublishOtpMessage error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("smsService.PublishOtpMessage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	return nil
}

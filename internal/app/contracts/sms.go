package contracts

import (
	"context"
	"curebird-service/internal/pkg/dto/requests"
)

// SmsPublisher hands OTP messages to the delivery worker queue.
type SmsPublisher interface {
	PublishOtpMessage(ctx context.Context, request *requests.OtpSmsMessage) error
}

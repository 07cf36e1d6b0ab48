package otp

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/dto/responses"
)

type OtpUsecase interface {
	// SendCode validates the phone number locally, passes the challenge for
	// the request's slot and queues the code for delivery. The returned
	// handle confirms exactly one code.
	SendCode(ctx context.Context, portalSessionID string, request *requests.SendOtp) (*responses.SendOtp, error)
	// ConfirmCode burns the handle on success and signs the phone number in.
	ConfirmCode(ctx context.Context, portalSessionID string, request *requests.ConfirmOtp) (*models.Identity, error)
	// DisposeChallenges tears down every challenge verifier the portal
	// session created, so a later visit starts with fresh ones.
	DisposeChallenges(ctx context.Context, portalSessionID string)
}

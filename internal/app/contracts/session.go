package contracts

import (
	"context"
	"curebird-service/internal/app/models"
)

// SessionService manages server-side portal session records and their JWTs.
type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) (token string, err error)
	ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error)
	GetSessionData(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	VerifySessionToken(ctx context.Context, token string) (sessionID string, err error)
}
